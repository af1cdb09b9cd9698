// Package ports declares the collaborators the scan service drives. Keeping
// them here lets the service be tested without tesseract or a disk.
package ports

import (
	"context"

	"dlscan/internal/ocr"
	"dlscan/internal/render"
)

// OCREngine transcribes an image.
type OCREngine interface {
	Name() string
	Recognize(ctx context.Context, image []byte, opts ocr.Options) (ocr.Result, error)
}

// FileStore keeps accepted uploads and returns the stored name.
type FileStore interface {
	Save(ctx context.Context, originalName string, data []byte) (string, error)
}

// Renderer prints a translated licence.
type Renderer interface {
	Render(ctx context.Context, doc render.Document) ([]byte, error)
}
