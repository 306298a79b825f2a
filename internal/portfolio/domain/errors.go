package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrUnknownField   = errors.New("unknown form field")
	ErrInvalidTab     = errors.New("unknown tab")
	ErrSubmitInFlight = errors.New("a submit for this resource is already in progress")
	ErrUploadTooLarge = errors.New("upload exceeds size limit")
	ErrUploadNotImage = errors.New("upload is not an image")
)

// ValidationError is a locally detected form problem. It blocks the network call.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RequestError is a failed call to the portfolio API. Message is the
// generic text shown to the user; the server body is never parsed.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// LoadError reports a failed initial fetch of one collection.
type LoadError struct {
	Collection string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Collection, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to surface for err, falling back to fallback.
func UserMessage(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var rerr *RequestError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return fallback
}
