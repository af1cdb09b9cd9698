package extraction

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	horizontalSpaceRe    = regexp.MustCompile(`[\t\f\v\p{Zs}]+`)
	spaceAroundNewlineRe = regexp.MustCompile(` ?\n ?`)
	newlineRunRe         = regexp.MustCompile(`\n{2,}`)
)

// Normalize canonicalises OCR output before any matching: accents are composed
// (NFC), CR becomes LF, horizontal whitespace runs become one space, blank
// lines are dropped and the result is trimmed.
//
// Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = spaceAroundNewlineRe.ReplaceAllString(text, "\n")
	text = newlineRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// collapseSpaces joins the whitespace-separated words of s with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
