// Package translate lays extracted licence fields out as the French table
// printed on the document and its English translation.
package translate

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Locale of a sheet.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

// Row is one labelled value of a sheet.
type Row struct {
	Label string
	Value string
}

// Header is the document banner: licence classes, issuing country and
// authority, and the document title.
type Header struct {
	Categories []string
	Country    string
	Authority  string
	Title      string
}

// Classes renders the categories as the "[A][B]..." banner.
func (h Header) Classes() string {
	var b strings.Builder
	for _, c := range h.Categories {
		b.WriteString("[" + c + "]")
	}
	return b.String()
}

// Sheet is one localized table: a header then ordered rows.
type Sheet struct {
	Locale Locale
	Header Header
	Rows   []Row
}

// Get returns the value of the row labelled label.
func (s Sheet) Get(label string) (string, bool) {
	for _, r := range s.Rows {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// headerKeys are the JSON keys of the header fields, in output order.
var headerKeys = map[Locale][5]string{
	LocaleFR: {"header_classes", "license_categories", "country", "issuing_authority", "document_title"},
	LocaleEN: {"Header Classes", "License Categories", "Country", "Issuing Authority", "Document Title"},
}

// MarshalJSON writes the sheet as one flat object, header first, keeping row
// order.
func (s Sheet) MarshalJSON() ([]byte, error) {
	keys, ok := headerKeys[s.Locale]
	if !ok {
		keys = headerKeys[LocaleEN]
	}
	categories := s.Header.Categories
	if categories == nil {
		categories = []string{}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	header := []any{s.Header.Classes(), categories, s.Header.Country, s.Header.Authority, s.Header.Title}
	for i, key := range keys {
		if err := write(key, header[i]); err != nil {
			return nil, err
		}
	}
	for _, r := range s.Rows {
		if err := write(r.Label, r.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
