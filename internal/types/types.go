package types

import "fmt"

// ScopeID identifies a lexical scope by the minimum indentation column
// at which lines belong to it. Scope 0 is the global scope and is never
// popped from a scope stack.
type ScopeID int

// GlobalScope is the outermost scope, always present.
const GlobalScope ScopeID = 0

// TokenSpan is a half-open character range over the analyzed document,
// tagged with the syntax-token kind that matched it. Offsets are
// absolute (newline-inclusive) into the full document text.
type TokenSpan struct {
	Start int
	End   int
	Kind  string
}

func (t TokenSpan) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}

// SymbolKind tags a detected symbol with the construct or symbol
// pattern that produced it.
type SymbolKind string

const (
	KindClass      SymbolKind = "class"
	KindInterface  SymbolKind = "interface"
	KindStruct     SymbolKind = "struct"
	KindEnum       SymbolKind = "enum"
	KindFunction   SymbolKind = "function"
	KindMethod     SymbolKind = "method"
	KindVariable   SymbolKind = "variable"
	KindAssignment SymbolKind = "variable_assignment"
	KindLambda     SymbolKind = "lambda"
	KindArrow      SymbolKind = "arrow"
	KindParam      SymbolKind = "param"
	KindImport     SymbolKind = "import"
)

// DefinitionOrder is the fixed priority order in which definition
// patterns are tested against a line. First match per kind wins;
// distinct kinds may all match the same line.
var DefinitionOrder = []SymbolKind{
	KindClass, KindInterface, KindStruct, KindEnum,
	KindFunction, KindMethod, KindAssignment, KindLambda, KindArrow,
}

// SymbolPatternOrder is the fixed order in which the weaker symbol
// patterns are tested after the definition patterns.
var SymbolPatternOrder = []SymbolKind{KindParam, KindVariable, KindImport}

// IsNamingDefinition reports whether a construct kind carries a symbol
// name that establishes function/class context.
func (k SymbolKind) IsNamingDefinition() bool {
	switch k {
	case KindClass, KindInterface, KindStruct, KindEnum, KindFunction, KindMethod:
		return true
	}
	return false
}

// IsCallable reports whether a construct kind carries a parameter list.
func (k SymbolKind) IsCallable() bool {
	switch k {
	case KindFunction, KindMethod, KindLambda, KindArrow:
		return true
	}
	return false
}

// SymbolInfo is one detected symbol: its name, the kind of pattern that
// matched it, the scope it lives in, the line it was defined on, and
// free-form metadata (parent construct linkage for nested definitions).
type SymbolInfo struct {
	Name     string
	Kind     SymbolKind
	Scope    ScopeID
	Line     int
	Metadata map[string]string
}

// Metadata keys used by the analyzer.
const (
	MetaParentName = "parent_name"
	MetaParentKind = "parent_type"
	MetaDefinedIn  = "defined_in"
)

func (s SymbolInfo) String() string {
	return fmt.Sprintf("%s %s (line %d, scope %d)", s.Name, s.Kind, s.Line, s.Scope)
}

// LineState records the resolved indent width and scope of one line
// after processing. Line -1 is a synthetic sentinel (indent 0, scope 0)
// seeding the first real line.
type LineState struct {
	Indent int
	Scope  ScopeID
}

// SentinelLineState seeds scope decisions before the first line.
var SentinelLineState = LineState{Indent: 0, Scope: GlobalScope}
