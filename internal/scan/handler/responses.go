package handler

import (
	"dlscan/internal/extraction"
	"dlscan/internal/ocr"
	"dlscan/internal/scan"
	"dlscan/internal/translate"
)

// ScanResponse is the body of POST /ocr/{documentType}.
type ScanResponse struct {
	Filename   string            `json:"filename"`
	SavedAs    string            `json:"saved_as"`
	Meta       ocr.Meta          `json:"meta"`
	RawText    string            `json:"raw_text"`
	FieldsFR   translate.Sheet   `json:"fields_fr"`
	FieldsEN   translate.Sheet   `json:"fields_en"`
	Normalized extraction.Fields `json:"normalized"`
}

// ExtractResponse is the body of POST /extract/{documentType}.
type ExtractResponse struct {
	DocumentType string            `json:"document_type"`
	Fields       extraction.Fields `json:"fields"`
}

func toScanResponse(res *scan.Result) ScanResponse {
	return ScanResponse{
		Filename:   res.Filename,
		SavedAs:    res.SavedAs,
		Meta:       res.Meta,
		RawText:    res.RawText,
		FieldsFR:   res.FieldsFR,
		FieldsEN:   res.FieldsEN,
		Normalized: res.Normalized,
	}
}
