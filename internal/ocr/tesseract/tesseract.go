//go:build ocr

package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"dlscan/internal/ocr"
)

// Engine implements ocr.Engine with the gosseract binding to libtesseract.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// New constructs a tesseract-backed engine.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return Name }

// Recognize transcribes one image. libtesseract cannot be interrupted, so
// on cancellation the call returns immediately and the client is released
// when recognition finishes.
func (e *Engine) Recognize(ctx context.Context, image []byte, opts ocr.Options) (ocr.Result, error) {
	if len(image) == 0 {
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorUnreadableImage, Name, "empty image", nil)
	}

	type outcome struct {
		res ocr.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		c := e.clientFactory()
		defer c.Close()
		res, err := recognizeWithClient(c, image, opts)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorTimeout, Name, "recognition interrupted", ctx.Err())
	case out := <-done:
		return out.res, out.err
	}
}

func recognizeWithClient(c *gosseract.Client, image []byte, opts ocr.Options) (ocr.Result, error) {
	if err := c.SetImageFromBytes(image); err != nil {
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorUnreadableImage, Name, "set image", err)
	}
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}
	if err := c.SetLanguage(lang); err != nil {
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorUnavailable, Name, fmt.Sprintf("set language %s", lang), err)
	}
	psm := opts.PSM
	if psm == 0 {
		psm = DefaultPSM
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorInternal, Name, "set page segmentation mode", err)
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, ocr.NewEngineError(ocr.ErrorUnreadableImage, Name, "recognize text", err)
	}

	return ocr.Result{
		Text: strings.TrimSpace(text),
		Meta: ocr.Meta{
			Engine:     Name,
			Lang:       lang,
			PSM:        psm,
			Confidence: meanConfidence(c),
		},
	}, nil
}

// meanConfidence averages word confidences on a 0..1 scale.
func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
