// Package profile loads declarative language profiles from TOML
// definitions and serves them through a read-only registry. A profile
// is the complete per-language rule set driving analysis: comment
// markers, indentation behavior, definition and symbol patterns, syntax
// token patterns, and categorized suggestion word lists.
package profile

import (
	"regexp"
	"sort"

	"github.com/standardbeagle/lpa/internal/regexcache"
	"github.com/standardbeagle/lpa/internal/types"
)

// Definition is the raw TOML shape of one language definition file.
type Definition struct {
	Language       string              `toml:"language"`
	Comment        string              `toml:"comment"`
	BlockComment   []string            `toml:"block_comment"`
	Indent         string              `toml:"indent"`
	IndentTriggers []string            `toml:"indent_triggers"`
	DedentTriggers []string            `toml:"dedent_triggers"`
	Definitions    map[string]string   `toml:"definitions"`
	SymbolPatterns map[string]string   `toml:"symbol_patterns"`
	SyntaxTokens   map[string]string   `toml:"syntax_tokens"`
	Suggestions    map[string][]string `toml:"suggestions"`
}

// Profile is a compiled, immutable language profile. Pattern slots that
// failed to compile are nil; detection degrades, the profile stays
// usable. Never mutated after Compile.
type Profile struct {
	Language     string
	Comment      string
	BlockComment [2]string
	Indent       string

	IndentTriggers []*regexp.Regexp
	DedentTriggers []*regexp.Regexp

	Definitions    map[types.SymbolKind]*regexp.Regexp
	SymbolPatterns map[types.SymbolKind]*regexp.Regexp

	SyntaxTokens map[string]*regexp.Regexp
	// TokenOrder fixes the iteration order over SyntaxTokens so token
	// spans come out identically on every run.
	TokenOrder []string

	Suggestions map[string][]string
}

// IndentWidth is the column width of one indent unit.
func (p *Profile) IndentWidth() int {
	if len(p.Indent) == 0 {
		return 4
	}
	return len(p.Indent)
}

// Compile turns a validated definition into a usable profile. All
// patterns go through the shared compilation cache; failures become nil
// slots rather than errors.
func Compile(def *Definition) *Profile {
	p := &Profile{
		Language:       def.Language,
		Comment:        def.Comment,
		Indent:         def.Indent,
		Definitions:    make(map[types.SymbolKind]*regexp.Regexp, len(def.Definitions)),
		SymbolPatterns: make(map[types.SymbolKind]*regexp.Regexp, len(def.SymbolPatterns)),
		SyntaxTokens:   make(map[string]*regexp.Regexp, len(def.SyntaxTokens)),
		Suggestions:    make(map[string][]string, len(def.Suggestions)),
	}
	if p.Indent == "" {
		p.Indent = "    "
	}
	if len(def.BlockComment) == 2 {
		p.BlockComment = [2]string{def.BlockComment[0], def.BlockComment[1]}
	}

	for _, trig := range def.IndentTriggers {
		if re := regexcache.Compile(trig); re != nil {
			p.IndentTriggers = append(p.IndentTriggers, re)
		}
	}
	for _, trig := range def.DedentTriggers {
		if re := regexcache.Compile(trig); re != nil {
			p.DedentTriggers = append(p.DedentTriggers, re)
		}
	}

	for kind, pattern := range def.Definitions {
		if re := regexcache.Compile(pattern); re != nil {
			p.Definitions[types.SymbolKind(kind)] = re
		}
	}
	for kind, pattern := range def.SymbolPatterns {
		if re := regexcache.Compile(pattern); re != nil {
			p.SymbolPatterns[types.SymbolKind(kind)] = re
		}
	}
	for name, pattern := range def.SyntaxTokens {
		if re := regexcache.Compile(pattern); re != nil {
			p.SyntaxTokens[name] = re
			p.TokenOrder = append(p.TokenOrder, name)
		}
	}
	sort.Strings(p.TokenOrder)

	for category, words := range def.Suggestions {
		copied := make([]string, len(words))
		copy(copied, words)
		p.Suggestions[category] = copied
	}

	return p
}
