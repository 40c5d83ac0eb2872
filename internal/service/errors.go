package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service. Handlers translate them to HTTP
// responses through Kind; anything not listed here is a storage failure.
var (
	// ErrInvalidInput marks a request the caller must fix. Errors built with
	// invalidInput match it through errors.Is and carry a readable message.
	ErrInvalidInput        = errors.New("invalid input")
	ErrFolderAlreadyExists = errors.New("a folder with that name already exists")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrImageNotFound       = errors.New("tag has no stored image")
	// ErrExtractionFailed wraps any failure of the vision model call.
	ErrExtractionFailed = errors.New("extraction failed")
)

// Error kinds exposed to API clients.
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindUpstreamFailure = "upstream_failure"
	KindStorageFailure  = "storage_failure"
)

// Kind classifies err into one of the closed set of error kinds.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFolderAlreadyExists):
		return KindValidation
	case errors.Is(err, ErrFolderNotFound), errors.Is(err, ErrTagNotFound), errors.Is(err, ErrImageNotFound):
		return KindNotFound
	case errors.Is(err, ErrExtractionFailed):
		return KindUpstreamFailure
	default:
		return KindStorageFailure
	}
}

type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}

type extractionError struct {
	cause error
}

func (e *extractionError) Error() string { return e.cause.Error() }

func (e *extractionError) Is(target error) bool { return target == ErrExtractionFailed }

func (e *extractionError) Unwrap() error { return e.cause }
