// Package render prints translated licence sheets as a PDF document.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"dlscan/internal/extraction"
	"dlscan/internal/translate"
	"dlscan/pkg/requestcontext"
)

// ErrInvalidDocument is returned when a document lacks one of its sheets.
var ErrInvalidDocument = errors.New("render: document has no sheets")

// Document is everything printed for one licence.
type Document struct {
	Type   extraction.DocumentType
	FR     translate.Sheet
	EN     translate.Sheet
	Fields extraction.Fields
}

const (
	pageMargin  = 15.0
	labelWidth  = 70.0
	rowHeight   = 7.0
	titleHeight = 10.0
)

// PDF renders documents on A4 portrait pages with the core Helvetica font.
type PDF struct {
	author string
}

// Option configures a PDF renderer.
type Option func(*PDF)

// WithAuthor sets the author recorded in the PDF metadata.
func WithAuthor(author string) Option {
	return func(p *PDF) { p.author = author }
}

// NewPDF builds a renderer.
func NewPDF(opts ...Option) *PDF {
	p := &PDF{author: "dlscan"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Render produces the PDF bytes for doc. The generation time comes from the
// request context.
func (p *PDF) Render(ctx context.Context, doc Document) ([]byte, error) {
	if len(doc.FR.Rows) == 0 || len(doc.EN.Rows) == 0 {
		return nil, ErrInvalidDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	generatedAt := requestcontext.Now(ctx).UTC()

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin+5)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetTitle(doc.EN.Header.Title, true)
	pdf.SetAuthor(p.author, true)
	pdf.SetCreator("dlscan", true)
	pdf.SetSubject(fmt.Sprintf("%s driver's license translation", doc.Type), true)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 110)
		footer := fmt.Sprintf("Generated %s - page %d", generatedAt.Format(time.RFC3339), pdf.PageNo())
		pdf.CellFormat(0, 6, tr(footer), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, titleHeight, tr("Driver's License Translation"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, rowHeight, tr("Licence categories: "+strings.Join(doc.EN.Header.Categories, ", ")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeSheet(pdf, tr, "Original (French)", doc.FR)
	pdf.Ln(6)
	writeSheet(pdf, tr, "Translation (English)", doc.EN)

	if len(doc.Fields) > 0 {
		pdf.Ln(6)
		writeFields(pdf, tr, doc.Fields)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(pdf *fpdf.Fpdf, tr func(string) string, heading string, s translate.Sheet) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, rowHeight+1, tr(heading), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 236, 245)
	banner := strings.Join([]string{s.Header.Country, s.Header.Authority, s.Header.Title}, " / ")
	pdf.MultiCell(0, rowHeight, tr(banner), "1", "C", true)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, rowHeight, tr(s.Header.Classes()), "LRB", 1, "C", false, 0, "")

	for _, row := range s.Rows {
		writeRow(pdf, tr, row.Label, row.Value)
	}
}

func writeFields(pdf *fpdf.Fpdf, tr func(string) string, fields extraction.Fields) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, rowHeight+1, tr("Extracted fields"), "", 1, "L", false, 0, "")
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		writeRow(pdf, tr, key, fields[key])
	}
}

func writeRow(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		value = "-"
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.CellFormat(labelWidth, rowHeight, tr(label), "1", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, rowHeight, tr(value), "1", "L", false)
}
