package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/standardbeagle/lpa/internal/regexcache"
	"github.com/standardbeagle/lpa/internal/types"
)

// resolveLineScope advances the indentation-based scope stack for one
// line and records its LineState.
//
// The stack is monotonic: every pushed boundary is strictly greater
// than the one below it, and the sentinel scope 0 is never popped. A
// line's own scope is the deepest boundary at or above its indent
// column; a trigger line that opens a deeper scope still belongs to the
// scope it is written in, only its body lands in the pushed scope.
func (a *Analyzer) resolveLineScope(lineNum int, line string) {
	prevState, ok := a.lineStates[lineNum-1]
	if !ok {
		prevState = types.SentinelLineState
	}

	indent := leadingWhitespace(line)

	// Blank lines carry the previous scope forward untouched.
	if strings.TrimSpace(line) == "" {
		a.lineStates[lineNum] = types.LineState{Indent: indent, Scope: prevState.Scope}
		return
	}

	// Indentation-driven dedent: drop boundaries deeper than this line.
	for len(a.scopeStack) > 1 && types.ScopeID(indent) < a.top() {
		a.pop()
	}

	// Indent triggers open a scope one indent unit deeper.
	if a.anyTriggerMatches(a.profile.IndentTriggers, line) {
		next := types.ScopeID(indent + a.profile.IndentWidth())
		if next > a.top() {
			a.scopeStack = append(a.scopeStack, next)
		}
	}

	// Dedent triggers close every scope at or deeper than this line.
	if a.anyTriggerMatches(a.profile.DedentTriggers, line) {
		for len(a.scopeStack) > 1 && types.ScopeID(indent) <= a.top() {
			a.pop()
		}
	}

	// Indentation-driven nesting for languages without triggers: a line
	// indented past the stack top after an indent increase opens a
	// scope at its own column.
	if types.ScopeID(indent) > a.top() && indent > prevState.Indent {
		a.scopeStack = append(a.scopeStack, types.ScopeID(indent))
	}

	lineScope := a.scopeForIndent(indent)
	a.currentScope = lineScope

	// A function or class whose body the stack has left stops being the
	// enclosing context. Closing a class closes its methods with it.
	if a.currentFunction != nil && lineScope < a.currentFunction.scope {
		a.currentFunction = nil
	}
	if a.currentClass != nil && lineScope < a.currentClass.scope {
		a.currentClass = nil
		a.currentFunction = nil
	}

	a.lineStates[lineNum] = types.LineState{Indent: indent, Scope: lineScope}
}

// scopeForIndent returns the deepest stack boundary a line at the given
// indent belongs to. The stack is strictly increasing, so this is the
// topmost entry not exceeding the indent.
func (a *Analyzer) scopeForIndent(indent int) types.ScopeID {
	for i := len(a.scopeStack) - 1; i >= 0; i-- {
		if a.scopeStack[i] <= types.ScopeID(indent) {
			return a.scopeStack[i]
		}
	}
	return types.GlobalScope
}

func (a *Analyzer) top() types.ScopeID {
	if len(a.scopeStack) == 0 {
		return types.GlobalScope
	}
	return a.scopeStack[len(a.scopeStack)-1]
}

func (a *Analyzer) pop() {
	if len(a.scopeStack) > 0 {
		a.scopeStack = a.scopeStack[:len(a.scopeStack)-1]
	}
}

func (a *Analyzer) anyTriggerMatches(triggers []*regexp.Regexp, line string) bool {
	for _, trigger := range triggers {
		if regexcache.Matches(trigger, line) {
			return true
		}
	}
	return false
}

// leadingWhitespace counts leading whitespace characters (not columns;
// a tab counts as one, matching how profiles define indent units).
func leadingWhitespace(line string) int {
	n := 0
	for _, r := range line {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}
