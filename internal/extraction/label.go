package extraction

import (
	"fmt"
	"regexp"
)

// labelCaptureWidth bounds how much text after a label may belong to its value.
const labelCaptureWidth = 60

var alphaRunRe = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]{3,}`)

// Label anchors a field on its printed label.
type Label struct {
	re *regexp.Regexp
}

// NewLabel compiles pattern (a regular expression for the label text) into a
// case-insensitive anchor capturing the rest of the label's line.
func NewLabel(pattern string) (Label, error) {
	re, err := regexp.Compile(fmt.Sprintf(`(?i)(?:%s)\s*[:\]\-]?\s*([^\n]{0,%d})`, pattern, labelCaptureWidth))
	if err != nil {
		return Label{}, err
	}
	return Label{re: re}, nil
}

// MustLabel is NewLabel for patterns known to be valid.
func MustLabel(pattern string) Label {
	l, err := NewLabel(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

// LabelLocator reads the value following a label, stopping before the next
// table column.
type LabelLocator struct {
	columns *regexp.Regexp
}

// Locate returns the first alphabetic run of three or more letters after the
// label. When there is none it falls back to the cleaned capture, and it
// returns "" when the label does not occur at all.
func (l *LabelLocator) Locate(text string, label Label) string {
	chunk := l.chunk(text, label)
	if chunk == "" {
		return ""
	}
	if word := alphaRunRe.FindString(chunk); word != "" {
		return StripQuotes(word)
	}
	return StripQuotes(chunk)
}

func (l *LabelLocator) chunk(text string, label Label) string {
	m := label.re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	chunk := m[1]
	if l.columns != nil {
		if loc := l.columns.FindStringIndex(chunk); loc != nil {
			chunk = chunk[:loc[0]]
		}
	}
	return chunk
}
