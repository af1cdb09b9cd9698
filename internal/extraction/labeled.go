package extraction

import (
	"regexp"
	"strings"
)

// MaliRecord is the field set of a label-anchored licence.
type MaliRecord struct {
	FullName      string `json:"full_name"`
	BirthDate     string `json:"birth_date"`
	LicenseNumber string `json:"license_number"`
	IssueDate     string `json:"issue_date"`
	ExpiryDate    string `json:"expiry_date"`
}

// Fields returns every key of the record.
func (r MaliRecord) Fields() Fields {
	return Fields{
		KeyFullName:      r.FullName,
		KeyBirthDate:     r.BirthDate,
		KeyLicenseNumber: r.LicenseNumber,
		KeyIssueDate:     r.IssueDate,
		KeyExpiryDate:    r.ExpiryDate,
	}
}

// slashDate tolerates spacing inside the date and an "o" read for a leading 0.
const slashDate = `([oO0]?\d{1,2}\s*/\s*\d{1,2}\s*/\s*\d{2,4})`

var (
	lastNameLabel   = MustLabel(`Nom`)
	firstNamesLabel = MustLabel(`Pr[ée]noms?`)

	leadingNomRe = regexp.MustCompile(`(?i)^Nom`)
	// Lower-case junk glued in front of an upper-case surname ("frANGARA").
	leadingJunkRe = regexp.MustCompile(`^(?:fr|mr|f)\s*(\p{Lu})`)

	birthDateRe  = regexp.MustCompile(`(?i)Date\s*de\s*naissance\s*[:\]\-]?\s*` + slashDate)
	issueDateRe  = regexp.MustCompile(`(?is)D[ée]livr[ée].{0,25}?` + slashDate)
	expiryDateRe = regexp.MustCompile(`(?is)Valable\s*jusqu.*?` + slashDate)
	permitRe     = regexp.MustCompile(`(?i)(?:N[°o]?\s*Permis|NPermis)\s*[:\-]?\s*([A-Z0-9/\-]{4,})`)

	ocrZeros = strings.NewReplacer("o", "0", "O", "0")
)

// LabeledExtractor implements the label-anchored strategy.
type LabeledExtractor struct {
	locator     *LabelLocator
	corrections map[string]string
}

// NewLabeledExtractor builds the extractor for Malian licences.
func NewLabeledExtractor(lex Lexicon) (*LabeledExtractor, error) {
	c, err := lex.compile()
	if err != nil {
		return nil, err
	}
	return &LabeledExtractor{
		locator:     &LabelLocator{columns: c.columns},
		corrections: c.corrections,
	}, nil
}

func (e *LabeledExtractor) Type() DocumentType { return DocumentMali }

func (e *LabeledExtractor) Extract(raw string) Fields {
	return e.ExtractRecord(raw).Fields()
}

// ExtractRecord runs the label-anchored pipeline on raw OCR text.
func (e *LabeledExtractor) ExtractRecord(raw string) MaliRecord {
	text := Normalize(raw)

	lastName := e.locator.Locate(text, lastNameLabel)
	lastName = strings.TrimSpace(leadingNomRe.ReplaceAllString(lastName, ""))
	lastName = strings.TrimSpace(leadingJunkRe.ReplaceAllString(lastName, "$1"))

	firstNames := e.locator.Locate(text, firstNamesLabel)

	fullName := StripQuotes(lastName + " " + firstNames)
	fullName = StripQuotes(e.correct(strings.ToUpper(fullName)))

	return MaliRecord{
		FullName:      fullName,
		BirthDate:     findDate(birthDateRe, text),
		LicenseNumber: findPermit(text),
		IssueDate:     findDate(issueDateRe, text),
		ExpiryDate:    findDate(expiryDateRe, text),
	}
}

// correct applies the correction table word by word.
func (e *LabeledExtractor) correct(s string) string {
	if len(e.corrections) == 0 {
		return s
	}
	return wordRe.ReplaceAllStringFunc(s, func(w string) string {
		if to, ok := e.corrections[w]; ok {
			return to
		}
		return w
	})
}

func findDate(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return ocrZeros.Replace(strings.Join(strings.Fields(m[1]), ""))
}

func findPermit(text string) string {
	m := permitRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return StripQuotes(m[1])
}
