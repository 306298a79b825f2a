package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-console/console/internal/platform/logx"
	"github.com/portfolio-console/console/internal/portfolio/domain"
	"github.com/portfolio-console/console/internal/portfolio/views"
)

var errConfirmationRequired = errors.New("deletion must be confirmed with confirm=true")

func (h *Handler) view() views.ViewModel {
	return views.Build(h.store.Snapshot(), h.store.Now())
}

func (h *Handler) ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "view": h.view()})
}

// fail answers with the error and the current view so clients can render
// the transient message the store just set.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logx.New(c.Request.Context()).LogError(c.FullPath(), err)
	}
	c.JSON(status, gin.H{"ok": false, "error": domain.UserMessage(err, err.Error()), "view": h.view()})
}

func statusFor(err error) int {
	var (
		verr *domain.ValidationError
		rerr *domain.RequestError
		lerr *domain.LoadError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSubmitInFlight), errors.Is(err, errConfirmationRequired):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidTab):
		return http.StatusBadRequest
	case errors.As(err, &rerr), errors.As(err, &lerr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) state(c *gin.Context) {
	h.ok(c)
}

func (h *Handler) reload(c *gin.Context) {
	if err := h.store.Load(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) setTab(c *gin.Context) {
	var req tabReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if err := h.store.SetTab(domain.Tab(req.Tab)); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) setSearch(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	h.store.SetSearch(req.Term)
	h.ok(c)
}

func (h *Handler) cancelEdit(c *gin.Context) {
	h.store.CancelEdit()
	h.ok(c)
}

// applyPatch sets fields in name order so a bad field fails deterministically.
func applyPatch(patch formPatch, set func(field, value string) error) error {
	fields := make([]string, 0, len(patch))
	for f := range patch {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if err := set(f, patch[f]); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) patchProjectForm(c *gin.Context) {
	var patch formPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if err := applyPatch(patch, h.store.SetProjectField); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) patchExperienceForm(c *gin.Context) {
	var patch formPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid body")
		return
	}
	if err := applyPatch(patch, h.store.SetExperienceField); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) uploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "missing image file")
		return
	}

	upload := domain.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	// oversized files are rejected by the store without reading them
	if fh.Size <= h.maxUploadBytes {
		f, err := fh.Open()
		if err != nil {
			h.fail(c, fmt.Errorf("open upload: %w", err))
			return
		}
		defer f.Close()
		upload.Data, err = io.ReadAll(f)
		if err != nil {
			h.fail(c, fmt.Errorf("read upload: %w", err))
			return
		}
	}

	if err := h.store.SelectFile(upload); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) clearImage(c *gin.Context) {
	h.store.ClearFile()
	h.ok(c)
}

func (h *Handler) submitProject(c *gin.Context) {
	if _, err := h.store.SubmitProject(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) submitExperience(c *gin.Context) {
	if _, err := h.store.SubmitExperience(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) editProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.BeginEditProject(id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) editExperience(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.BeginEditExperience(id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func confirmed(c *gin.Context) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query("confirm")))
	return err == nil && v
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		h.fail(c, errConfirmationRequired)
		return
	}
	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}

func (h *Handler) deleteExperience(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if !confirmed(c) {
		h.fail(c, errConfirmationRequired)
		return
	}
	if err := h.store.DeleteExperience(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c)
}
