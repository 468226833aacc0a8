package profile

import (
	goerrors "errors"
	"fmt"
	"regexp"
	"sort"

	lpaerrors "github.com/standardbeagle/lpa/internal/errors"
	"github.com/standardbeagle/lpa/internal/regexcache"
)

// Validate checks the required fields of a raw definition. A failed
// validation skips the definition during registry load; it never aborts
// the load as a whole.
func Validate(path string, def *Definition) error {
	if def.Language == "" {
		return lpaerrors.NewProfileError(path, goerrors.New("language name cannot be empty")).WithField("language")
	}

	if def.BlockComment != nil && len(def.BlockComment) != 2 {
		return lpaerrors.NewProfileError(path,
			fmt.Errorf("block_comment must have exactly 2 entries, got %d", len(def.BlockComment))).
			WithField("block_comment").WithLanguage(def.Language)
	}

	if def.Indent == "" {
		return lpaerrors.NewProfileError(path, goerrors.New("indent unit cannot be empty")).
			WithField("indent").WithLanguage(def.Language)
	}

	for kind := range def.Definitions {
		if kind == "" {
			return lpaerrors.NewProfileError(path, goerrors.New("definition pattern with empty kind")).
				WithField("definitions").WithLanguage(def.Language)
		}
	}
	for kind := range def.SymbolPatterns {
		if kind == "" {
			return lpaerrors.NewProfileError(path, goerrors.New("symbol pattern with empty kind")).
				WithField("symbol_patterns").WithLanguage(def.Language)
		}
	}
	for name := range def.SyntaxTokens {
		if name == "" {
			return lpaerrors.NewProfileError(path, goerrors.New("syntax token pattern with empty name")).
				WithField("syntax_tokens").WithLanguage(def.Language)
		}
	}
	for category := range def.Suggestions {
		if category == "" {
			return lpaerrors.NewProfileError(path, goerrors.New("suggestion list with empty category")).
				WithField("suggestions").WithLanguage(def.Language)
		}
	}

	return nil
}

// patternDiags reports each pattern slot of a definition that failed to
// compile. The profile still registers with the slot absent; the
// failures surface through the registry's load diagnostics.
func patternDiags(def *Definition) []error {
	var diags []error
	check := func(slot, pattern string) {
		if pattern == "" || regexcache.Compile(pattern) != nil {
			return
		}
		if _, err := regexp.Compile("(?s)" + pattern); err != nil {
			diags = append(diags, lpaerrors.NewPatternError(def.Language, slot, pattern, err))
		}
	}

	for i, trig := range def.IndentTriggers {
		check(fmt.Sprintf("indent_triggers[%d]", i), trig)
	}
	for i, trig := range def.DedentTriggers {
		check(fmt.Sprintf("dedent_triggers[%d]", i), trig)
	}
	for _, kind := range sortedKeys(def.Definitions) {
		check("definitions."+kind, def.Definitions[kind])
	}
	for _, kind := range sortedKeys(def.SymbolPatterns) {
		check("symbol_patterns."+kind, def.SymbolPatterns[kind])
	}
	for _, name := range sortedKeys(def.SyntaxTokens) {
		check("syntax_tokens."+name, def.SyntaxTokens[name])
	}
	return diags
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
