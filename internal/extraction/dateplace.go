package extraction

import (
	"regexp"
	"strings"
)

var (
	datePlaceRe   = regexp.MustCompile(`(\d{2}[-/]\d{2}[-/]\d{4})\s+([A-ZÀ-ÖØ-Ý'\- ]{2,})`)
	placeMarkerRe = regexp.MustCompile(`\b[1-9]\s*[.)]?`)
	strictDateRe  = regexp.MustCompile(`^\s*(\d{2})[-/](\d{2})[-/](\d{4})\s*$`)
)

// DatePlace is a date with the place printed right after it.
type DatePlace struct {
	Date  string
	Place string
}

// ExtractDatePlace finds the first "DD-MM-YYYY PLACE" pair in zone. The date
// separator is canonicalised to "-" and the place is cleaned with CleanPlace.
func ExtractDatePlace(zone string) (DatePlace, bool) {
	if zone == "" {
		return DatePlace{}, false
	}
	m := datePlaceRe.FindStringSubmatch(strings.ToUpper(Normalize(zone)))
	if m == nil {
		return DatePlace{}, false
	}
	place := m[2]
	if loc := placeMarkerRe.FindStringIndex(place); loc != nil {
		place = place[:loc[0]]
	}
	return DatePlace{
		Date:  strings.ReplaceAll(m[1], "/", "-"),
		Place: CleanPlace(place),
	}, true
}

func datePlaceIn(zone string) Attempt[DatePlace] {
	return func() (DatePlace, bool) {
		return ExtractDatePlace(zone)
	}
}

// ToISO converts a strict DD-MM-YYYY or DD/MM/YYYY date to YYYY-MM-DD. Any
// other input yields "".
func ToISO(date string) string {
	m := strictDateRe.FindStringSubmatch(date)
	if m == nil {
		return ""
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}
