// Package suggest filters a suggestion list down to completion
// candidates for the word under the cursor. The analyzer produces the
// deterministic, unranked suggestion universe; this package narrows it
// for the popup.
package suggest

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// DefaultThreshold is the Jaro-Winkler similarity below which a fuzzy
// candidate is dropped.
const DefaultThreshold = 0.80

// Filter narrows suggestions for a typed prefix.
type Filter struct {
	fuzzy     bool
	threshold float64
}

// NewFilter creates a filter. threshold outside (0, 1] falls back to
// the default.
func NewFilter(fuzzy bool, threshold float64) *Filter {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Filter{fuzzy: fuzzy, threshold: threshold}
}

// Apply returns the candidates matching prefix: case-insensitive prefix
// matches first (sorted), then, when fuzzy matching is enabled, fuzzy
// matches above the threshold (sorted). An empty prefix returns the
// input unchanged.
func (f *Filter) Apply(suggestions []string, prefix string) []string {
	if prefix == "" {
		return suggestions
	}

	lowered := strings.ToLower(prefix)
	var exact, fuzzy []string
	for _, candidate := range suggestions {
		if strings.HasPrefix(strings.ToLower(candidate), lowered) {
			exact = append(exact, candidate)
			continue
		}
		if f.fuzzy && f.Similarity(prefix, candidate) >= f.threshold {
			fuzzy = append(fuzzy, candidate)
		}
	}

	sort.Strings(exact)
	sort.Strings(fuzzy)
	return append(exact, fuzzy...)
}

// Similarity returns the Jaro-Winkler similarity of two strings in
// [0, 1], case-insensitively.
func (f *Filter) Similarity(a, b string) float64 {
	return float64(edlib.JaroWinklerSimilarity(strings.ToLower(a), strings.ToLower(b)))
}
