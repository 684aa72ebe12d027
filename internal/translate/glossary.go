package translate

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-codestory/internal/lang"
)

// Glossary maps English terms to their translation per translator code.
type Glossary map[string]map[string]string

// DefaultGlossary covers the recurring tutorial vocabulary.
var DefaultGlossary = Glossary{
	"hi": {
		"Tutorial":        "ट्यूटोरियल",
		"Introduction":    "परिचय",
		"Getting Started": "शुरुआत करना",
		"Code":            "कोड",
		"Example":         "उदाहरण",
		"Chapter":         "अध्याय",
	},
	"te": {
		"Tutorial":        "ట్యుటోరియల్",
		"Introduction":    "పరిచయం",
		"Getting Started": "ప్రారంభించడం",
		"Code":            "కోడ్",
		"Example":         "ఉదాహరణ",
		"Chapter":         "అధ్యాయం",
	},
}

type glossaryTerm struct {
	re          *regexp.Regexp
	replacement string
}

// GlossaryTranslator replaces known terms case-insensitively. It works
// offline and returns text unchanged for targets without a table.
type GlossaryTranslator struct {
	terms map[string][]glossaryTerm
}

// NewGlossaryTranslator compiles g. Longer terms are replaced first.
func NewGlossaryTranslator(g Glossary) *GlossaryTranslator {
	gt := &GlossaryTranslator{terms: make(map[string][]glossaryTerm, len(g))}
	for code, table := range g {
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys {
			gt.terms[code] = append(gt.terms[code], glossaryTerm{
				re:          regexp.MustCompile(`(?i)` + regexp.QuoteMeta(k)),
				replacement: table[k],
			})
		}
	}
	return gt
}

// Translate implements Translator.
func (g *GlossaryTranslator) Translate(_ context.Context, text, _, target string) (string, error) {
	terms := g.terms[lang.TranslatorCode(target)]
	if len(terms) == 0 || strings.TrimSpace(text) == "" {
		return text, nil
	}
	for _, t := range terms {
		text = t.re.ReplaceAllLiteralString(text, t.replacement)
	}
	return text, nil
}

var _ Translator = (*GlossaryTranslator)(nil)
