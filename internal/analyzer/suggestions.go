package analyzer

import (
	"sort"

	"github.com/standardbeagle/lpa/internal/debug"
)

// Suggestions returns the union of the profile's suggestion categories
// (minus the excluded ones) and the names of all symbols visible from
// the current scope stack, deduplicated and sorted. No ranking: the
// result is fully determined by profile, symbol state, and exclusions.
func (a *Analyzer) Suggestions(excludeCategories []string) []string {
	excluded := make(map[string]bool, len(excludeCategories))
	for _, category := range excludeCategories {
		excluded[category] = true
	}

	set := make(map[string]bool)
	for category, words := range a.profile.Suggestions {
		if excluded[category] {
			debug.LogAnalyze("excluding suggestion category: %s", category)
			continue
		}
		for _, word := range words {
			set[word] = true
		}
	}

	for _, sym := range a.symbols.Visible(a.scopeStack) {
		set[sym.Name] = true
	}

	suggestions := make([]string, 0, len(set))
	for word := range set {
		suggestions = append(suggestions, word)
	}
	sort.Strings(suggestions)
	return suggestions
}
