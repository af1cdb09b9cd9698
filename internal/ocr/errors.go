package ocr

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalised failure taxonomy of OCR engines.
type ErrorCategory string

const (
	// ErrorUnreadableImage means the engine could not decode or read the image.
	ErrorUnreadableImage ErrorCategory = "unreadable_image"
	// ErrorUnavailable means the engine is missing, misconfigured or shedding load.
	ErrorUnavailable ErrorCategory = "unavailable"
	// ErrorTimeout means recognition exceeded its deadline.
	ErrorTimeout ErrorCategory = "timeout"
	// ErrorInternal is any other engine failure.
	ErrorInternal ErrorCategory = "internal"
)

// EngineError wraps engine failures with a normalised category.
type EngineError struct {
	Category   ErrorCategory
	Engine     string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("ocr %s [%s]: %s: %v", e.Engine, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("ocr %s [%s]: %s", e.Engine, e.Category, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// NewEngineError builds an EngineError; timeouts and outages are retryable.
func NewEngineError(category ErrorCategory, engine, message string, underlying error) *EngineError {
	return &EngineError{
		Category:   category,
		Engine:     engine,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTimeout || category == ErrorUnavailable,
	}
}

// IsRetryable reports whether err is an EngineError worth retrying.
func IsRetryable(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Retryable
	}
	return false
}

// CategoryOf extracts the category, ErrorInternal for foreign errors.
func CategoryOf(err error) ErrorCategory {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return ErrorInternal
}

// ErrNotEnabled is returned by builds without the tesseract engine.
var ErrNotEnabled = errors.New("ocr engine not compiled in; build with -tags ocr")
