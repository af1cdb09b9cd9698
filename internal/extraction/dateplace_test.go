package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDatePlace(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want DatePlace
		ok   bool
	}{
		{name: "slash date upper-cased place", zone: "DATE DE NAISSANCE 01/02/1990 Bamako", want: DatePlace{Date: "01-02-1990", Place: "BAMAKO"}, ok: true},
		{name: "hyphenated place kept", zone: "12-12-1985 GRAND-BASSAM 4. DATE", want: DatePlace{Date: "12-12-1985", Place: "GRAND-BASSAM"}, ok: true},
		{name: "place across newline", zone: "03-04-2020\nABIDJAN", want: DatePlace{Date: "03-04-2020", Place: "ABIDJAN"}, ok: true},
		{name: "date without place", zone: "01-02-1990", ok: false},
		{name: "no date", zone: "DATE DE NAISSANCE BAMAKO", ok: false},
		{name: "empty", zone: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDatePlace(tt.zone)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "01-02-1990", want: "1990-02-01"},
		{in: "01/02/1990", want: "1990-02-01"},
		{in: " 03-04-2020 ", want: "2020-04-03"},
		{in: "1-2-1990", want: ""},
		{in: "01-02-90", want: ""},
		{in: "01-02-1990 BAMAKO", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToISO(tt.in))
		})
	}
}
