package extraction

import "strings"

// NameValidator decides whether a cleaned candidate plausibly is a person's
// name.
type NameValidator struct {
	stopwords map[string]struct{}
}

// NewNameValidator builds a validator rejecting multi-word candidates that
// contain any of stopwords.
func NewNameValidator(stopwords []string) NameValidator {
	return NameValidator{stopwords: upperSet(stopwords)}
}

// Valid reports whether candidate is acceptable as a name:
//   - it is not empty,
//   - if it has two or more tokens, none of them is a stopword,
//   - it holds at least two letters.
func (v NameValidator) Valid(candidate string) bool {
	tokens := strings.Fields(candidate)
	if len(tokens) == 0 {
		return false
	}
	if len(tokens) >= 2 {
		for _, t := range tokens {
			if _, ok := v.stopwords[t]; ok {
				return false
			}
		}
	}
	return letterCount(candidate) >= 2
}

// Accept returns candidate when it is Valid and "" otherwise.
func (v NameValidator) Accept(candidate string) string {
	if !v.Valid(candidate) {
		return ""
	}
	return candidate
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if isUpperNameLetter(r) {
			n++
		}
	}
	return n
}

// nameReader turns a raw name zone into an accepted name.
type nameReader struct {
	labels    map[string]struct{}
	validator NameValidator
}

func (n nameReader) read(zone string) string {
	if zone == "" {
		return ""
	}
	candidate := CleanName(stripWords(Normalize(zone), n.labels))
	return n.validator.Accept(candidate)
}

func (n nameReader) attempt(zone string) Attempt[string] {
	return func() (string, bool) {
		name := n.read(zone)
		return name, name != ""
	}
}
