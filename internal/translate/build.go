package translate

import (
	"fmt"
	"strings"

	"dlscan/internal/extraction"
)

// restrictionsNoneFR is the French rendering of an empty restrictions field.
const restrictionsNoneFR = "Néant"

// Build lays fields out as the French and English sheets of docType.
func Build(docType extraction.DocumentType, fields extraction.Fields, categories []string) (fr, en Sheet, err error) {
	cats := append([]string(nil), categories...)
	switch docType {
	case extraction.DocumentCIV:
		fr, en = civSheets(fields)
	case extraction.DocumentMali:
		fr, en = maliSheets(fields)
	default:
		return Sheet{}, Sheet{}, fmt.Errorf("%w: %q", extraction.ErrUnknownDocumentType, docType)
	}
	fr.Header.Categories = cats
	en.Header.Categories = cats
	return fr, en, nil
}

func civSheets(f extraction.Fields) (Sheet, Sheet) {
	restrictionsFR := f.Get(extraction.KeyRestrictions)
	if restrictionsFR == "" || restrictionsFR == extraction.RestrictionsNoneIndicated {
		restrictionsFR = restrictionsNoneFR
	}
	restrictionsEN := f.Get(extraction.KeyRestrictions)
	if restrictionsEN == "" {
		restrictionsEN = extraction.RestrictionsNoneIndicated
	}

	fr := Sheet{
		Locale: LocaleFR,
		Header: Header{
			Country:   "RÉPUBLIQUE DE CÔTE D’IVOIRE",
			Authority: "MINISTÈRE DES TRANSPORTS",
			Title:     "PERMIS DE CONDUIRE",
		},
		Rows: []Row{
			{"Nom", f.Get(extraction.KeyLastName)},
			{"Prénoms", f.Get(extraction.KeyFirstNames)},
			{"Nom complet", f.Get(extraction.KeyFullName)},
			{"Date et lieu de naissance", joinTrim(f.Get(extraction.KeyBirthDate), f.Get(extraction.KeyBirthPlace))},
			{"Date et lieu de délivrance", joinTrim(f.Get(extraction.KeyIssueDate), f.Get(extraction.KeyIssuePlace))},
			{"Numéro du permis de conduire", f.Get(extraction.KeyLicenseNumber)},
			{"Restriction(s)", restrictionsFR},
		},
	}
	en := Sheet{
		Locale: LocaleEN,
		Header: Header{
			Country:   "REPUBLIC OF CÔTE D’IVOIRE",
			Authority: "MINISTRY OF TRANSPORTATION",
			Title:     "DRIVER'S LICENSE",
		},
		Rows: []Row{
			{"Last Name", f.Get(extraction.KeyLastName)},
			{"First Names", f.Get(extraction.KeyFirstNames)},
			{"Full Name", f.Get(extraction.KeyFullName)},
			{"Date of Birth", f.Get(extraction.KeyBirthDate)},
			{"Place of Birth", f.Get(extraction.KeyBirthPlace)},
			{"Issue Date", f.Get(extraction.KeyIssueDate)},
			{"Issue Place", f.Get(extraction.KeyIssuePlace)},
			{"License Number", f.Get(extraction.KeyLicenseNumber)},
			{"Restrictions", restrictionsEN},
		},
	}
	return fr, en
}

func maliSheets(f extraction.Fields) (Sheet, Sheet) {
	fr := Sheet{
		Locale: LocaleFR,
		Header: Header{
			Country:   "RÉPUBLIQUE DU MALI",
			Authority: "MINISTÈRE DES TRANSPORTS",
			Title:     "PERMIS DE CONDUIRE",
		},
		Rows: []Row{
			{"Nom complet", f.Get(extraction.KeyFullName)},
			{"Date de naissance", f.Get(extraction.KeyBirthDate)},
			{"Numéro du permis de conduire", f.Get(extraction.KeyLicenseNumber)},
			{"Date de délivrance", f.Get(extraction.KeyIssueDate)},
			{"Valable jusqu'au", f.Get(extraction.KeyExpiryDate)},
		},
	}
	en := Sheet{
		Locale: LocaleEN,
		Header: Header{
			Country:   "REPUBLIC OF MALI",
			Authority: "MINISTRY OF TRANSPORTATION",
			Title:     "DRIVER'S LICENSE",
		},
		Rows: []Row{
			{"Full Name", f.Get(extraction.KeyFullName)},
			{"Date of Birth", f.Get(extraction.KeyBirthDate)},
			{"License Number", f.Get(extraction.KeyLicenseNumber)},
			{"Issue Date", f.Get(extraction.KeyIssueDate)},
			{"Expiry Date", f.Get(extraction.KeyExpiryDate)},
		},
	}
	return fr, en
}

func joinTrim(a, b string) string {
	return strings.TrimSpace(a + " " + b)
}
