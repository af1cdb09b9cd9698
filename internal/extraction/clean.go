package extraction

import (
	"regexp"
	"strings"
)

var (
	punctuationNoiseRe = regexp.MustCompile("[`~^_=+•·…“”\";:<>|\\\\/\\[\\]{}()]")
	nameDashRe         = regexp.MustCompile(`[–—-]`)
	placeDashRe        = regexp.MustCompile(`[–—]`)
	nonNameRe          = regexp.MustCompile(`[^A-ZÀ-ÖØ-Ý'\s]`)
	nonPlaceRe         = regexp.MustCompile(`[^A-ZÀ-ÖØ-Ý'\s-]`)
	quoteNoiseRe       = regexp.MustCompile(`[|_“”"‘’]+`)
	whitespaceRunRe    = regexp.MustCompile(`\s+`)

	// wordRe is a Unicode-aware \w+; Go's \b only knows ASCII word characters.
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")
)

// CleanName reduces a name zone to upper-case letters, apostrophes and single
// spaces. Dashes are treated as separators. Apostrophes survive only when they
// touch a letter, so N'DA is kept while a stray quote is dropped.
//
// CleanName is idempotent.
func CleanName(s string) string {
	return cleanWith(s, nameDashRe, nonNameRe)
}

// CleanPlace is CleanName for place names: hyphens are kept so compound names
// such as GRAND-BASSAM stay intact.
func CleanPlace(s string) string {
	return cleanWith(s, placeDashRe, nonPlaceRe)
}

func cleanWith(s string, dashes, disallowed *regexp.Regexp) string {
	if s == "" {
		return ""
	}
	s = apostrophes.Replace(s)
	s = strings.ToUpper(s)
	s = punctuationNoiseRe.ReplaceAllString(s, " ")
	s = dashes.ReplaceAllString(s, " ")
	s = disallowed.ReplaceAllString(s, " ")
	return stripLonelyQuotes(collapseSpaces(s))
}

// stripLonelyQuotes blanks every apostrophe that has no letter on either side.
// Neighbours are judged on the input, not on the partially rewritten string.
func stripLonelyQuotes(s string) string {
	if !strings.ContainsRune(s, '\'') {
		return s
	}
	runes := []rune(s)
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = r
		if r != '\'' {
			continue
		}
		before := i > 0 && isNameLetter(runes[i-1])
		after := i+1 < len(runes) && isNameLetter(runes[i+1])
		if !before && !after {
			out[i] = ' '
		}
	}
	return collapseSpaces(string(out))
}

// isNameLetter matches the Latin-1 letters used on francophone documents,
// either case.
func isNameLetter(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	case r >= 'À' && r <= 'Ö', r >= 'Ø' && r <= 'Ý':
		return true
	case r >= 'à' && r <= 'ö', r >= 'ø' && r <= 'ý':
		return true
	}
	return false
}

// isUpperNameLetter is isNameLetter restricted to upper case.
func isUpperNameLetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'À' && r <= 'Ö') || (r >= 'Ø' && r <= 'Ý')
}

// stripWords blanks every whole word of s whose upper-case form is in words.
func stripWords(s string, words map[string]struct{}) string {
	if s == "" || len(words) == 0 {
		return s
	}
	return wordRe.ReplaceAllStringFunc(s, func(w string) string {
		if _, ok := words[strings.ToUpper(w)]; ok {
			return " "
		}
		return w
	})
}

// StripQuotes collapses whitespace and removes pipes, underscores and quote
// marks that OCR leaves around table cells.
func StripQuotes(s string) string {
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	s = quoteNoiseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
