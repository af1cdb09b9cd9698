package extraction

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Correction rewrites one known OCR misreading to its canonical spelling.
type Correction struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Lexicon holds the word lists the extractors match against. It is plain
// configuration data: extractors compile it once at construction and never
// modify it afterwards.
type Lexicon struct {
	// Stopwords are administrative or geographic terms that betray a
	// mis-segmented name zone when they appear in a multi-word candidate.
	Stopwords []string `yaml:"stopwords"`

	// LabelWords are section headers removed from a name zone before cleaning.
	LabelWords []string `yaml:"label_words"`

	// RestrictionLabels are headers dropped from the start of the
	// restrictions zone.
	RestrictionLabels []string `yaml:"restriction_labels"`

	// ColumnTokens are regular expressions marking the start of an adjacent
	// table cell; a label capture is cut at the first of them.
	ColumnTokens []string `yaml:"column_tokens"`

	// Corrections are whole-word rewrites applied to label-anchored names.
	Corrections []Correction `yaml:"corrections"`
}

// DefaultLexicon returns the word lists tuned on Ivorian and Malian licences.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Stopwords: []string{
			"DATE", "LIEU", "NAISSANCE", "DELIVRANCE", "DÉLIVRANCE", "PERMIS",
			"CONDUIRE", "NUMERO", "NUMÉRO", "RESTRICTION", "RESTRICTIONS",
			"ABIDJAN", "REPUBLIQUE", "RÉPUBLIQUE", "MINISTERE", "MINISTÈRE",
			"TRANSPORT", "TRANSPORTS", "COTE", "CÔTE", "IVOIRE", "D'IVOIRE",
		},
		LabelWords: []string{
			"NOM", "PRENOM", "PRENOMS", "PRÉNOM", "PRÉNOMS", "DATE", "LIEU",
			"NAISSANCE", "DELIVRANCE", "DÉLIVRANCE",
		},
		RestrictionLabels: []string{"RESTRICTION", "RESTRICTIONS"},
		ColumnTokens: []string{
			"Cat", "D[ée]livr[ée]", "Temporaire", "Permanent", "Sceau", "autorité",
		},
		Corrections: []Correction{
			{From: "MOHAMELD", To: "MOHAMED"},
			{From: "ANGARA", To: "TANGARA"},
		},
	}
}

// LoadLexicon reads a YAML lexicon. Lists present in the document replace the
// corresponding default list; omitted lists keep their defaults. An empty
// document yields DefaultLexicon.
func LoadLexicon(r io.Reader) (Lexicon, error) {
	lex := DefaultLexicon()
	if err := yaml.NewDecoder(r).Decode(&lex); err != nil && !errors.Is(err, io.EOF) {
		return Lexicon{}, fmt.Errorf("decode lexicon: %w", err)
	}
	if _, err := lex.compile(); err != nil {
		return Lexicon{}, err
	}
	return lex, nil
}

// LoadLexiconFile reads a YAML lexicon from path. An empty path yields
// DefaultLexicon.
func LoadLexiconFile(path string) (Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()
	return LoadLexicon(f)
}

// compiledLexicon is the matching form of a Lexicon.
type compiledLexicon struct {
	stopwords         map[string]struct{}
	labelWords        map[string]struct{}
	restrictionLabels map[string]struct{}
	columns           *regexp.Regexp
	corrections       map[string]string
}

func (l Lexicon) compile() (compiledLexicon, error) {
	c := compiledLexicon{
		stopwords:         upperSet(l.Stopwords),
		labelWords:        upperSet(l.LabelWords),
		restrictionLabels: upperSet(l.RestrictionLabels),
		corrections:       make(map[string]string, len(l.Corrections)),
	}

	tokens := make([]string, 0, len(l.ColumnTokens))
	for _, tok := range l.ColumnTokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if _, err := regexp.Compile(tok); err != nil {
			return compiledLexicon{}, fmt.Errorf("column token %q: %w", tok, err)
		}
		tokens = append(tokens, "(?:"+tok+")")
	}
	if len(tokens) > 0 {
		c.columns = regexp.MustCompile(`(?i)` + strings.Join(tokens, "|"))
	}

	for _, corr := range l.Corrections {
		from := strings.ToUpper(strings.TrimSpace(corr.From))
		if from == "" {
			continue
		}
		if wordRe.FindString(from) != from {
			return compiledLexicon{}, fmt.Errorf("correction %q: must be a single word", corr.From)
		}
		c.corrections[from] = strings.ToUpper(strings.TrimSpace(corr.To))
	}
	return c, nil
}

func upperSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
