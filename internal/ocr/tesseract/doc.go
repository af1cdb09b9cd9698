// Package tesseract adapts libtesseract to ocr.Engine.
//
// The cgo binding is compiled only with the "ocr" build tag; default builds
// get an engine that reports ocr.ErrNotEnabled, so the service and tests
// build on machines without tesseract installed.
package tesseract

const (
	// Name is reported in ocr.Meta.Engine.
	Name = "tesseract"
	// DefaultLang reads French licences.
	DefaultLang = "fra"
	// DefaultPSM treats the licence as one uniform block of text.
	DefaultPSM = 6
)
