package todo

import (
	"errors"
	"fmt"
)

// Error kinds. Operations wrap one of these, so callers test with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("list is full")
	ErrDocumentMissing  = errors.New("document missing")
	ErrStorageFailure   = errors.New("storage failure")
)

// Kind names reported by ErrorKind.
const (
	KindInvalidInput     = "invalid_input"
	KindNotFound         = "not_found"
	KindCapacityExceeded = "capacity_exceeded"
	KindDocumentMissing  = "document_missing"
	KindStorageFailure   = "storage_failure"
	KindUnknown          = "unknown"
)

// ErrorKind returns the kind name of err, or KindUnknown.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrDocumentMissing):
		return KindDocumentMissing
	case errors.Is(err, ErrStorageFailure):
		return KindStorageFailure
	default:
		return KindUnknown
	}
}

// ValidationError points at the part of a loaded document that is malformed.
type ValidationError struct {
	Path string // e.g. items[2].updated_at
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
