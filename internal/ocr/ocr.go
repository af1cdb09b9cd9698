// Package ocr defines the transcription port consumed by the scan service
// and a guard that bounds each call in time and sheds load when the engine
// keeps failing.
package ocr

import "context"

// Options tune a single recognition.
type Options struct {
	// Lang is a tesseract language code such as "fra".
	Lang string
	// PSM is the tesseract page segmentation mode; 6 reads one uniform block.
	PSM int
}

// Meta describes how a transcription was produced.
type Meta struct {
	Engine     string  `json:"engine"`
	Lang       string  `json:"lang"`
	PSM        int     `json:"psm"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Result is the engine's transcription of one image.
type Result struct {
	Text string `json:"text"`
	Meta Meta   `json:"meta"`
}

// Engine turns an image into text.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte, opts Options) (Result, error)
}
