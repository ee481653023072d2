package usecase

import (
	"errors"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/gamelog"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ValidationError carries field-level failures and matches ErrInvalidInput.
type ValidationError struct {
	Result gamelog.ValidationResult
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Result.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
