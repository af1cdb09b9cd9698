package extraction

import (
	"regexp"
	"strings"
)

// Section markers of the numbered layout. A marker is a numeral, an optional
// "." or ")" and optional spacing; it does not need to stand alone, so an OCR
// merge such as "1NOM" still marks section 1.
const (
	Marker1    = `\b1\s*[.)]?\s*`
	Marker2    = `\b2\s*[.)]?\s*`
	Marker3    = `\b3\s*[.)]?\s*`
	Marker4    = `\b4\s*[.)]?\s*`
	Marker5    = `\b5\s*[.)]?\s*`
	Marker6or8 = `\b(?:6|8)\s*[.)]?\s*`
	EndOfText  = `$`
)

// Section captures the text strictly between a start and an end marker.
type Section struct {
	re *regexp.Regexp
}

// NewSection compiles a section bounded by the two marker patterns. Matching
// is case-insensitive, non-greedy and spans newlines.
func NewSection(start, end string) (Section, error) {
	re, err := regexp.Compile(`(?is)` + start + `(.*?)` + end)
	if err != nil {
		return Section{}, err
	}
	return Section{re: re}, nil
}

// MustSection is NewSection for marker patterns known to be valid.
func MustSection(start, end string) Section {
	s, err := NewSection(start, end)
	if err != nil {
		panic(err)
	}
	return s
}

// Find returns the trimmed text between the first start marker and the first
// end marker after it, or "" when either marker is missing.
func (s Section) Find(text string) string {
	m := s.re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Zones are the six field zones of a numbered document.
type Zones struct {
	LastName     string
	FirstNames   string
	Birth        string
	Issue        string
	License      string
	Restrictions string
}

// Segmenter splits a numbered document into its zones.
type Segmenter struct {
	lastName     Section
	firstNames   Section
	birth        Section
	issue        Section
	license      Section
	restrictions Section
}

// NewSegmenter returns a segmenter for the 1..6/8 numbering.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		lastName:     MustSection(Marker1, Marker2),
		firstNames:   MustSection(Marker2, Marker3),
		birth:        MustSection(Marker3, Marker4),
		issue:        MustSection(Marker4, Marker5),
		license:      MustSection(Marker5, Marker6or8),
		restrictions: MustSection(Marker6or8, EndOfText),
	}
}

// Split expects normalized, upper-cased text.
func (s *Segmenter) Split(text string) Zones {
	return Zones{
		LastName:     s.lastName.Find(text),
		FirstNames:   s.firstNames.Find(text),
		Birth:        s.birth.Find(text),
		Issue:        s.issue.Find(text),
		License:      s.license.Find(text),
		Restrictions: s.restrictions.Find(text),
	}
}
