package extraction

import (
	"regexp"
	"strings"
)

var licenseRe = regexp.MustCompile(`\b[A-Z0-9]{2,}\d{2}-\d{2}-\d{6,}[A-Z0-9]?\b`)

// RepairZeros upper-cases s and rewrites every letter O that sits next to a
// digit into the digit 0. Only that confusion is repaired.
func RepairZeros(s string) string {
	s = strings.ToUpper(s)
	if !strings.ContainsRune(s, 'O') {
		return s
	}
	runes := []rune(s)
	out := make([]rune, len(runes))
	copy(out, runes)
	for i, r := range runes {
		if r != 'O' {
			continue
		}
		before := i > 0 && isDigit(runes[i-1])
		after := i+1 < len(runes) && isDigit(runes[i+1])
		if before || after {
			out[i] = '0'
		}
	}
	return string(out)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// LongestLicense returns the longest licence-number match in text after zero
// repair. Ties go to the earliest match.
func LongestLicense(text string) string {
	best := ""
	for _, candidate := range licenseRe.FindAllString(RepairZeros(text), -1) {
		if len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}

func licenseIn(text string) Attempt[string] {
	return func() (string, bool) {
		n := LongestLicense(text)
		return n, n != ""
	}
}
