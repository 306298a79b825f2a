package http

import (
	"github.com/portfolio-console/console/internal/portfolio/store"
)

// Handler bundles the dependencies for the console endpoints.
type Handler struct {
	store          *store.Store
	maxUploadBytes int64
}

func New(s *store.Store, maxUploadBytes int64) *Handler {
	return &Handler{store: s, maxUploadBytes: maxUploadBytes}
}

type tabReq struct {
	Tab string `json:"tab" binding:"required"`
}

type searchReq struct {
	Term string `json:"term"`
}

// formPatch maps wire field names to new values.
type formPatch map[string]string
