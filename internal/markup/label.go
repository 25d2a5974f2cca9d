package markup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel composes, case-folds and trims s so labels compare regardless of case
// or of how accented letters were encoded.
func NormalizeLabel(s string) string {
	return strings.TrimSpace(cases.Fold().String(norm.NFC.String(s)))
}

// ContainsAny reports whether the normalized label contains any of the candidates.
// Candidates are normalized before comparison; empty candidates never match.
func ContainsAny(label string, candidates []string) bool {
	if label == "" {
		return false
	}

	for _, c := range candidates {
		n := NormalizeLabel(c)
		if n != "" && strings.Contains(label, n) {
			return true
		}
	}

	return false
}
