// Package validation holds the client-side checks that run before any
// call to the portfolio API. Each check reports only the first failing rule.
package validation

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/portfolio-console/console/internal/portfolio/domain"
)

// MaxUploadBytes is the default image size limit (5 MiB).
const MaxUploadBytes int64 = 5 * 1024 * 1024

const (
	MsgTitleRequired       = "El título es obligatorio"
	MsgDescriptionRequired = "La descripción es obligatoria"
	MsgInvalidLink         = "El enlace debe ser una URL válida"
	MsgPositionRequired    = "La posición es obligatoria"
	MsgCompanyRequired     = "La empresa es obligatoria"
	MsgStartDateRequired   = "La fecha de inicio es obligatoria"
	MsgInvalidStartDate    = "La fecha de inicio no es válida"
	MsgInvalidEndDate      = "La fecha de fin no es válida"
	MsgEndBeforeStart      = "La fecha de fin debe ser posterior a la fecha de inicio"
	MsgUploadTooLarge      = "El archivo debe ser menor a 5MB"
	MsgUploadNotImage      = "Solo se permiten archivos de imagen"
)

var validate = validator.New()

func fail(msg string) *domain.ValidationError {
	return &domain.ValidationError{Message: msg}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidURL reports whether s is empty or an absolute URL.
func IsValidURL(s string) bool {
	if s == "" {
		return true
	}
	return validate.Var(s, "url") == nil
}

// ValidateProjectForm checks title, description, then link.
func ValidateProjectForm(form domain.ProjectForm) *domain.ValidationError {
	switch {
	case blank(form.Title):
		return fail(MsgTitleRequired)
	case blank(form.Description):
		return fail(MsgDescriptionRequired)
	case !IsValidURL(strings.TrimSpace(form.Link)):
		return fail(MsgInvalidLink)
	}
	return nil
}

// ValidateExperienceForm checks position, company, description, start date,
// then the date order. Equal start and end dates are accepted.
func ValidateExperienceForm(form domain.ExperienceForm) *domain.ValidationError {
	switch {
	case blank(form.Position):
		return fail(MsgPositionRequired)
	case blank(form.Company):
		return fail(MsgCompanyRequired)
	case blank(form.Description):
		return fail(MsgDescriptionRequired)
	case form.StartDate == "":
		return fail(MsgStartDateRequired)
	}

	start, err := domain.ParseDate(form.StartDate)
	if err != nil {
		return &domain.ValidationError{Message: MsgInvalidStartDate, Err: err}
	}
	if form.EndDate == "" {
		return nil
	}
	end, err := domain.ParseDate(form.EndDate)
	if err != nil {
		return &domain.ValidationError{Message: MsgInvalidEndDate, Err: err}
	}
	if end.Before(start.Time) {
		return fail(MsgEndBeforeStart)
	}
	return nil
}

// CheckUpload rejects files larger than maxBytes or that are not images.
// An empty declared content type is filled in by sniffing the data.
func CheckUpload(u *domain.Upload, maxBytes int64) *domain.ValidationError {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	size := u.Size
	if size == 0 {
		size = int64(len(u.Data))
	}
	if size > maxBytes {
		return &domain.ValidationError{Message: MsgUploadTooLarge, Err: domain.ErrUploadTooLarge}
	}
	if u.ContentType == "" && len(u.Data) > 0 {
		u.ContentType = mimetype.Detect(u.Data).String()
	}
	if !strings.HasPrefix(u.ContentType, "image/") {
		return &domain.ValidationError{Message: MsgUploadNotImage, Err: domain.ErrUploadNotImage}
	}
	return nil
}
