//go:build !ocr

package tesseract

import (
	"context"

	"dlscan/internal/ocr"
)

// Engine is the placeholder used when tesseract is not compiled in.
type Engine struct{}

func New() *Engine { return &Engine{} }

func (e *Engine) Name() string { return Name }

func (e *Engine) Recognize(ctx context.Context, image []byte, opts ocr.Options) (ocr.Result, error) {
	return ocr.Result{}, ocr.NewEngineError(ocr.ErrorUnavailable, Name, "engine disabled", ocr.ErrNotEnabled)
}
