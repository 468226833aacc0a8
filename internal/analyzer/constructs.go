package analyzer

import (
	"strings"
	"unicode"

	"github.com/standardbeagle/lpa/internal/regexcache"
	"github.com/standardbeagle/lpa/internal/types"
)

// scanConstructs tests the line against the profile's definition
// patterns (in fixed priority order) and then its weaker symbol
// patterns, feeding the symbol table.
func (a *Analyzer) scanConstructs(lineNum int, line string, scope types.ScopeID) {
	stripped := strings.TrimLeftFunc(line, unicode.IsSpace)

	for _, kind := range types.DefinitionOrder {
		re, ok := a.profile.Definitions[kind]
		if !ok {
			continue
		}
		if m := regexcache.FindSubmatch(re, stripped); m != nil {
			a.handleDefinition(lineNum, kind, m, scope)
		}
	}

	for _, kind := range types.SymbolPatternOrder {
		re, ok := a.profile.SymbolPatterns[kind]
		if !ok {
			continue
		}
		m := regexcache.FindSubmatch(re, stripped)
		if m == nil {
			continue
		}

		// An incidental variable/param match must not clobber a symbol
		// already established in this scope (typically the definition
		// pattern that just matched the same line).
		if kind == types.KindVariable || kind == types.KindParam {
			if name := group(m, 1); name != "" {
				if _, exists := a.symbols.InScope(scope)[name]; exists {
					continue
				}
			}
		}

		a.handleSymbol(lineNum, kind, m, scope)
	}
}

// handleDefinition records a matched definition construct: the named
// symbol, the enclosing-context switch, and any parameter list.
func (a *Analyzer) handleDefinition(lineNum int, kind types.SymbolKind, m []string, scope types.ScopeID) {
	parentInfo := a.parentMetadata()

	var name string
	switch {
	case kind.IsNamingDefinition():
		name = group(m, 1)
	case kind == types.KindAssignment:
		name = group(m, 1)
		if isNumericName(name) {
			// Guard against assignment patterns that accidentally
			// capture a numeric literal.
			name = ""
		}
	}

	if name != "" {
		a.symbols.Add(name, kind, scope, lineNum, parentInfo)

		// The context's scope is the body scope, one indent unit past
		// the definition line. Leaving the body ends the context.
		bodyScope := scope + types.ScopeID(a.profile.IndentWidth())
		switch kind {
		case types.KindFunction, types.KindMethod:
			a.currentFunction = &constructContext{name: name, kind: kind, scope: bodyScope}
			a.currentClass = nil
		case types.KindClass, types.KindInterface, types.KindStruct, types.KindEnum:
			a.currentClass = &constructContext{name: name, kind: kind, scope: bodyScope}
			a.currentFunction = nil
		}
	}

	if !kind.IsCallable() {
		return
	}

	var params string
	switch kind {
	case types.KindFunction, types.KindMethod:
		params = group(m, 2)
	case types.KindLambda, types.KindArrow:
		params = group(m, 2)
		if params == "" {
			params = group(m, 1)
		}
	}
	if params == "" {
		return
	}

	// Parameters live one indent unit inside the defining construct.
	// Their parent metadata is the context enclosing the definition
	// itself, not the construct just opened.
	paramScope := scope + types.ScopeID(a.profile.IndentWidth())
	for _, param := range parseParameters(params) {
		meta := make(map[string]string, len(parentInfo)+1)
		for k, v := range parentInfo {
			meta[k] = v
		}
		if name != "" {
			meta[types.MetaDefinedIn] = name
		}
		a.symbols.Add(param, types.KindParam, paramScope, lineNum, meta)
	}
}

// handleSymbol records a matched symbol pattern (incidental variables,
// params outside definition lines, imports).
func (a *Analyzer) handleSymbol(lineNum int, kind types.SymbolKind, m []string, scope types.ScopeID) {
	parentInfo := a.parentMetadata()

	switch kind {
	case types.KindVariable:
		name := group(m, 1)
		if name == "" || isNumericName(name) {
			return
		}
		a.symbols.Add(name, kind, scope, lineNum, parentInfo)

	case types.KindParam:
		if name := group(m, 1); name != "" {
			a.symbols.Add(name, kind, scope, lineNum, parentInfo)
		}

	case types.KindImport:
		// Every capture group may carry a comma-separated name list.
		for i := 1; i < len(m); i++ {
			for _, imported := range strings.Split(m[i], ",") {
				imported = strings.TrimSpace(imported)
				if imported != "" {
					a.symbols.Add(imported, types.KindImport, scope, lineNum, parentInfo)
				}
			}
		}
	}
}

// parentMetadata links a new symbol to its innermost enclosing
// construct: the current function if inside one, else the current
// class. Nil at top level.
func (a *Analyzer) parentMetadata() map[string]string {
	ctx := a.currentFunction
	if ctx == nil {
		ctx = a.currentClass
	}
	if ctx == nil {
		return nil
	}
	return map[string]string{
		types.MetaParentName: ctx.name,
		types.MetaParentKind: string(ctx.kind),
	}
}

// parseParameters splits a captured parameter list on commas, trimming
// each entry and dropping empties.
func parseParameters(params string) []string {
	parts := strings.Split(params, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// group returns capture group i of a submatch, or "" when the group is
// absent or did not participate in the match.
func group(m []string, i int) string {
	if i < 0 || i >= len(m) {
		return ""
	}
	return m[i]
}

// isNumericName reports whether name consists solely of digits.
func isNumericName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
