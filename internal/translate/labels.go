package translate

// englishLabels maps record keys and French table labels to English labels.
var englishLabels = map[string]string{
	"last_name":      "Last Name",
	"first_names":    "First Names",
	"full_name":      "Full Name",
	"birth_date":     "Date of Birth",
	"birth_place":    "Place of Birth",
	"issue_date":     "Issue Date",
	"issue_place":    "Issue Place",
	"license_number": "License Number",
	"birth_date_iso": "birth_date_iso",
	"issue_date_iso": "issue_date_iso",
	"restrictions":   "Restrictions",
	"expiry_date":    "Expiry Date",

	"Nom":                          "Last Name",
	"Prénoms":                      "First Names",
	"Nom complet":                  "Full Name",
	"Date et lieu de naissance":    "Date and place of birth",
	"Date et lieu de délivrance":   "Date and place of issue",
	"Date de naissance":            "Date of Birth",
	"Date de délivrance":           "Issue Date",
	"Valable jusqu'au":             "Expiry Date",
	"Numéro du permis de conduire": "License Number",
	"Restriction(s)":               "Restrictions",
	"header_classes":               "Header Classes",
	"license_categories":           "License Categories",
	"country":                      "Country",
	"issuing_authority":            "Issuing Authority",
	"document_title":               "Document Title",
}

// EnglishLabels renames known keys to their English label. Unknown keys are
// kept as they are.
func EnglishLabels(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if en, ok := englishLabels[k]; ok {
			k = en
		}
		out[k] = v
	}
	return out
}
