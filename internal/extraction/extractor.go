package extraction

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DocumentType selects the extraction strategy for a licence layout.
type DocumentType string

const (
	// DocumentCIV is the Ivorian licence, fields numbered 1 to 6 (or 8).
	DocumentCIV DocumentType = "civ"
	// DocumentMali is the Malian licence, fields introduced by labels.
	DocumentMali DocumentType = "mali"
)

// ErrUnknownDocumentType is returned when no extractor handles a document type.
var ErrUnknownDocumentType = errors.New("unknown document type")

// ParseDocumentType validates a document type name, ignoring case and
// surrounding spaces.
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case DocumentCIV, DocumentMali:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
}

// Field keys of the records. Every key of a layout is always present in its
// Fields, with "" for values that could not be read.
const (
	KeyLastName      = "last_name"
	KeyFirstNames    = "first_names"
	KeyFullName      = "full_name"
	KeyBirthDate     = "birth_date"
	KeyBirthPlace    = "birth_place"
	KeyIssueDate     = "issue_date"
	KeyIssuePlace    = "issue_place"
	KeyLicenseNumber = "license_number"
	KeyBirthDateISO  = "birth_date_iso"
	KeyIssueDateISO  = "issue_date_iso"
	KeyRestrictions  = "restrictions"
	KeyExpiryDate    = "expiry_date"
)

// Fields is the flat view of an extracted record.
type Fields map[string]string

// Get returns the value for key, "" when absent.
func (f Fields) Get(key string) string {
	return f[key]
}

// Extractor reads one licence layout.
type Extractor interface {
	Type() DocumentType
	// Extract never fails: unreadable fields come back as "".
	Extract(raw string) Fields
}

// Registry selects an Extractor by document type.
type Registry struct {
	extractors map[DocumentType]Extractor
}

// NewRegistry compiles lex and builds one extractor per supported layout.
func NewRegistry(lex Lexicon) (*Registry, error) {
	numbered, err := NewNumberedExtractor(lex)
	if err != nil {
		return nil, err
	}
	labeled, err := NewLabeledExtractor(lex)
	if err != nil {
		return nil, err
	}
	return &Registry{extractors: map[DocumentType]Extractor{
		numbered.Type(): numbered,
		labeled.Type():  labeled,
	}}, nil
}

// For returns the extractor for t.
func (r *Registry) For(t DocumentType) (Extractor, error) {
	e, ok := r.extractors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocumentType, t)
	}
	return e, nil
}

// Types lists the supported document types in name order.
func (r *Registry) Types() []DocumentType {
	types := make([]DocumentType, 0, len(r.extractors))
	for t := range r.extractors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
