// Package ident normalizes free-form asset identifiers and guesses a
// dataset from identifier shape.
package ident

import (
	"regexp"
	"strings"

	"stormgis/internal/registry"
)

// the "number + letter suffix" id style, with or without a separator
var numSuffixRe = regexp.MustCompile(`^(\d+)\s*-?\s*([A-Za-z]{2,})$`)

// Variants expands a raw asset id into the ordered candidate spellings to
// try upstream. Every variant is upper-cased; upstream comparison is
// case-insensitive anyway, ordering only matters for diagnostics.
func Variants(rawID string, conv registry.Convention) []string {
	id := strings.ToUpper(strings.TrimSpace(rawID))
	if conv != registry.ConvNumberSuffix {
		return []string{id}
	}
	if m := numSuffixRe.FindStringSubmatch(id); m != nil {
		num, suffix := m[1], m[2]
		return dedupe([]string{
			num + suffix,
			num + "-" + suffix,
			num + " " + suffix,
		})
	}
	// id does not follow the convention; try light reformatting only
	return dedupe([]string{
		id,
		strings.ReplaceAll(id, "-", ""),
		strings.Join(strings.Fields(id), ""),
	})
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// shape heuristics for dataset auto-detection, most specific first
var (
	tmdlRe      = regexp.MustCompile(`^[A-Za-z]{2,3}-?\d+-?(SR|OF|TT)$`)
	landscapeRe = regexp.MustCompile(`^[A-Za-z]{2,3}\d+$`)
)

// DetectDataset guesses a dataset key from the shape of an asset id.
// Precedence: TMDL structure codes (trailing SR/OF/TT), then the
// letters-then-digits landscape style (WP4021), then the Fairfax
// number+suffix style (1373DP). An unrecognized shape is an explicit
// no-match; there is deliberately no default dataset.
func DetectDataset(rawID string) (string, bool) {
	id := strings.ToUpper(strings.TrimSpace(rawID))
	switch {
	case tmdlRe.MatchString(id):
		return registry.KeyTMDLStructures, true
	case landscapeRe.MatchString(id):
		return registry.KeyDCLandscape, true
	case numSuffixRe.MatchString(id):
		return registry.KeyFairfaxBMPs, true
	}
	return "", false
}
