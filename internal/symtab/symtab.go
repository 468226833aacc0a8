// Package symtab implements the scope-indexed symbol table backing the
// analyzer. Scopes are keyed by indentation-derived ScopeIDs; within a
// scope, symbols are keyed by name.
package symtab

import (
	"sort"

	"github.com/standardbeagle/lpa/internal/debug"
	"github.com/standardbeagle/lpa/internal/types"
)

// Table maps scope id -> symbol name -> symbol record. A Table belongs
// to exactly one analyzer; it is not safe for concurrent use.
type Table struct {
	scopes map[types.ScopeID]map[string]types.SymbolInfo
}

// New creates an empty table.
func New() *Table {
	return &Table{scopes: make(map[types.ScopeID]map[string]types.SymbolInfo)}
}

// Clear drops all scopes and symbols. Used at the start of a full
// analysis.
func (t *Table) Clear() {
	t.scopes = make(map[types.ScopeID]map[string]types.SymbolInfo)
}

// EnterScope ensures a scope's symbol map exists.
func (t *Table) EnterScope(id types.ScopeID) {
	if _, ok := t.scopes[id]; !ok {
		t.scopes[id] = make(map[string]types.SymbolInfo)
	}
}

// ExitScope is a no-op hook; scope-stack bookkeeping lives in the
// analyzer. Kept so the table's interface covers both transitions.
func (t *Table) ExitScope() {}

// Add inserts a symbol. Re-adding the same name in the same scope at
// the same line is a no-op; at a different line the entry is replaced
// (most recent definition wins per scope). Metadata is copied on store.
func (t *Table) Add(name string, kind types.SymbolKind, scope types.ScopeID, line int, metadata map[string]string) {
	if _, ok := t.scopes[scope]; !ok {
		t.scopes[scope] = make(map[string]types.SymbolInfo)
	}

	if existing, ok := t.scopes[scope][name]; ok && existing.Line == line {
		return
	}

	var copied map[string]string
	if len(metadata) > 0 {
		copied = make(map[string]string, len(metadata))
		for k, v := range metadata {
			copied[k] = v
		}
	}

	t.scopes[scope][name] = types.SymbolInfo{
		Name:     name,
		Kind:     kind,
		Scope:    scope,
		Line:     line,
		Metadata: copied,
	}
}

// RemoveRange deletes every symbol whose defining line falls in
// [startLine, endLine) across all scopes, dropping scopes left empty.
// Returns the number of symbols removed.
func (t *Table) RemoveRange(startLine, endLine int) int {
	removed := 0
	for scopeID, symbols := range t.scopes {
		for name, info := range symbols {
			if info.Line >= startLine && info.Line < endLine {
				delete(symbols, name)
				removed++
			}
		}
		if len(symbols) == 0 {
			delete(t.scopes, scopeID)
		}
	}
	if removed > 0 {
		debug.Log("SYMTAB", "removed %d symbols in line range [%d, %d)", removed, startLine, endLine)
	}
	return removed
}

// InScope returns the symbols recorded directly in one scope. The
// returned map is the live storage; callers must treat it as read-only.
func (t *Table) InScope(id types.ScopeID) map[string]types.SymbolInfo {
	return t.scopes[id]
}

// Visible resolves name visibility across a scope stack. The stack is
// ordered outermost-first; the innermost definition of a name shadows
// outer ones. Results are sorted by name.
func (t *Table) Visible(stack []types.ScopeID) []types.SymbolInfo {
	byName := make(map[string]types.SymbolInfo)
	for i := len(stack) - 1; i >= 0; i-- {
		for name, info := range t.scopes[stack[i]] {
			if _, ok := byName[name]; !ok {
				byName[name] = info
			}
		}
	}

	visible := make([]types.SymbolInfo, 0, len(byName))
	for _, info := range byName {
		visible = append(visible, info)
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].Name < visible[j].Name })
	return visible
}

// All returns every symbol across every scope, sorted by (line, scope,
// name). This is the canonical display order.
func (t *Table) All() []types.SymbolInfo {
	var all []types.SymbolInfo
	for _, symbols := range t.scopes {
		for _, info := range symbols {
			all = append(all, info)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		return a.Name < b.Name
	})
	return all
}

// Len returns the total number of symbols.
func (t *Table) Len() int {
	n := 0
	for _, symbols := range t.scopes {
		n += len(symbols)
	}
	return n
}

// Snapshot copies the current scope contents. Symbol records are
// values; their metadata maps are shared, which is safe because stored
// metadata is never mutated after Add.
func (t *Table) Snapshot() map[types.ScopeID]map[string]types.SymbolInfo {
	snap := make(map[types.ScopeID]map[string]types.SymbolInfo, len(t.scopes))
	for scopeID, symbols := range t.scopes {
		copied := make(map[string]types.SymbolInfo, len(symbols))
		for name, info := range symbols {
			copied[name] = info
		}
		snap[scopeID] = copied
	}
	return snap
}

// Restore replaces the table contents with a snapshot's copy. The
// snapshot itself stays untouched and reusable.
func (t *Table) Restore(snapshot map[types.ScopeID]map[string]types.SymbolInfo) {
	t.scopes = make(map[types.ScopeID]map[string]types.SymbolInfo, len(snapshot))
	for scopeID, symbols := range snapshot {
		copied := make(map[string]types.SymbolInfo, len(symbols))
		for name, info := range symbols {
			copied[name] = info
		}
		t.scopes[scopeID] = copied
	}
}
