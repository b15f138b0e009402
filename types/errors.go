package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can render a specific message.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindStorage     ErrorKind = "storage"
	KindIntegration ErrorKind = "integration"
)

// Sentinels for errors.Is matching across layers.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")

	// Integration sentinels, one per distinguishable tracker failure.
	ErrMissingCredentials = errors.New("missing tracker credentials")
	ErrInvalidToken       = errors.New("invalid tracker token")
	ErrRepoNotFound       = errors.New("tracker repository not found")
	ErrTrackerAPI         = errors.New("tracker API error")
)

// AppError provides structured error information for CLI output.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind sentinel and the wrapped cause to errors.Is.
func (e *AppError) Unwrap() []error {
	sentinel := map[ErrorKind]error{
		KindValidation: ErrValidation,
		KindNotFound:   ErrNotFound,
		KindStorage:    ErrStorage,
	}[e.Kind]
	if sentinel == nil {
		return []error{e.Err}
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// NewValidationError reports invalid caller input (blank title, unknown status).
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Err: cause}
}

// NewNotFoundError reports an operation against a nonexistent record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewStorageError surfaces a durable-I/O failure unchanged.
func NewStorageError(message string, cause error) *AppError {
	return &AppError{Kind: KindStorage, Message: message, Err: cause}
}

// NewIntegrationError wraps a tracker failure around its specific sentinel.
func NewIntegrationError(message string, sentinel error) *AppError {
	return &AppError{Kind: KindIntegration, Message: message, Err: sentinel}
}
