package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrMalformedOutput    = errors.New("malformed model output")
	ErrEmptyModelResponse = errors.New("empty model response")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrItineraryNotFound  = errors.New("itinerary not found")
	ErrMailDeliveryFailed = errors.New("mail delivery failed")
	ErrDatabaseError      = errors.New("database error")
)

// MalformedOutputError pinpoints the first field of a model response that
// did not match the expected itinerary or quiz shape.
type MalformedOutputError struct {
	Path   string
	Reason string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output at %s: %s", e.Path, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return ErrMalformedOutput }

func NewMalformedOutput(path, format string, args ...any) error {
	return &MalformedOutputError{Path: path, Reason: fmt.Sprintf(format, args...)}
}
