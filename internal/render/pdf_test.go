package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlscan/internal/extraction"
	"dlscan/internal/translate"
	"dlscan/pkg/requestcontext"
)

func civDocument(t *testing.T) Document {
	t.Helper()
	fields := extraction.Fields{
		extraction.KeyLastName:      "N'DA",
		extraction.KeyFirstNames:    "KOFFI ÉRIC",
		extraction.KeyFullName:      "N'DA KOFFI ÉRIC",
		extraction.KeyBirthPlace:    "SAN-PÉDRO",
		extraction.KeyLicenseNumber: "CI12-34-567890",
		extraction.KeyRestrictions:  extraction.RestrictionsNoneIndicated,
	}
	fr, en, err := translate.Build(extraction.DocumentCIV, fields, []string{"A", "B", "C"})
	require.NoError(t, err)
	return Document{Type: extraction.DocumentCIV, FR: fr, EN: en, Fields: fields}
}

func TestPDF_Render(t *testing.T) {
	ctx := requestcontext.WithTime(context.Background(), time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	out, err := NewPDF().Render(ctx, civDocument(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output is a PDF")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")))
}

func TestPDF_RenderWithoutFields(t *testing.T) {
	doc := civDocument(t)
	doc.Fields = nil

	out, err := NewPDF(WithAuthor("tests")).Render(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDF_RenderRejectsMissingSheets(t *testing.T) {
	doc := civDocument(t)
	doc.EN = translate.Sheet{}

	_, err := NewPDF().Render(context.Background(), doc)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestPDF_RenderHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDF().Render(ctx, civDocument(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDF_RenderMali(t *testing.T) {
	fr, en, err := translate.Build(extraction.DocumentMali, extraction.Fields{
		extraction.KeyFullName:   "TANGARA MOHAMED",
		extraction.KeyExpiryDate: "11/03/2029",
	}, nil)
	require.NoError(t, err)

	out, err := NewPDF().Render(context.Background(), Document{Type: extraction.DocumentMali, FR: fr, EN: en})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
