package arcgis

import (
	"fmt"
	"strings"
)

// MatchMode selects the predicate pass.
type MatchMode string

const (
	ModeExact MatchMode = "exact"
	ModeFuzzy MatchMode = "fuzzy"
)

// quoteLiteral escapes a value for embedding in a where clause. The value is
// user input, so this is an injection boundary: single quotes are doubled
// per the ArcGIS SQL quoting rules.
func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// BuildWhere turns (fields x variants) into a where clause. Exact mode is a
// disjunction of case-folded equality terms; fuzzy mode compares with LIKE
// against wildcarded forms of each variant, additionally trying the variant
// with its separators converted to spaces and to hyphens.
func BuildWhere(fields, variants []string, mode MatchMode) string {
	var terms []string
	for _, f := range fields {
		for _, v := range variants {
			switch mode {
			case ModeExact:
				terms = append(terms, fmt.Sprintf("UPPER(%s) = UPPER(%s)", f, quoteLiteral(v)))
			case ModeFuzzy:
				for _, w := range fuzzyForms(v) {
					terms = append(terms, fmt.Sprintf("UPPER(%s) LIKE UPPER(%s)", f, quoteLiteral("%"+w+"%")))
				}
			}
		}
	}
	return strings.Join(terms, " OR ")
}

func fuzzyForms(v string) []string {
	spaced := strings.ReplaceAll(v, "-", " ")
	hyphened := strings.ReplaceAll(v, " ", "-")
	forms := []string{v}
	if spaced != v {
		forms = append(forms, spaced)
	}
	if hyphened != v && hyphened != spaced {
		forms = append(forms, hyphened)
	}
	return forms
}
