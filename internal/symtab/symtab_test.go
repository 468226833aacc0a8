package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/lpa/internal/types"
)

func TestAddAndLookup(t *testing.T) {
	tbl := New()
	tbl.Add("greet", types.KindFunction, types.GlobalScope, 0, nil)

	inScope := tbl.InScope(types.GlobalScope)
	require.Contains(t, inScope, "greet")
	assert.Equal(t, types.KindFunction, inScope["greet"].Kind)
	assert.Equal(t, 0, inScope["greet"].Line)
	assert.Equal(t, 1, tbl.Len())
}

func TestAddIdempotentSameLine(t *testing.T) {
	tbl := New()
	tbl.Add("x", types.KindVariable, 4, 2, nil)
	tbl.Add("x", types.KindVariable, 4, 2, nil)

	assert.Equal(t, 1, tbl.Len())
}

func TestAddReplacesOnNewLine(t *testing.T) {
	tbl := New()
	tbl.Add("x", types.KindVariable, 4, 2, nil)
	tbl.Add("x", types.KindAssignment, 4, 7, nil)

	require.Equal(t, 1, tbl.Len())
	info := tbl.InScope(4)["x"]
	assert.Equal(t, 7, info.Line)
	assert.Equal(t, types.KindAssignment, info.Kind)
}

func TestAddCopiesMetadata(t *testing.T) {
	tbl := New()
	meta := map[string]string{types.MetaParentName: "Foo"}
	tbl.Add("bar", types.KindMethod, 4, 1, meta)

	meta[types.MetaParentName] = "mutated"
	assert.Equal(t, "Foo", tbl.InScope(4)["bar"].Metadata[types.MetaParentName])
}

func TestSameNameDifferentScopes(t *testing.T) {
	tbl := New()
	tbl.Add("x", types.KindVariable, types.GlobalScope, 0, nil)
	tbl.Add("x", types.KindVariable, 4, 2, nil)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 0, tbl.InScope(types.GlobalScope)["x"].Line)
	assert.Equal(t, 2, tbl.InScope(4)["x"].Line)
}

func TestRemoveRange(t *testing.T) {
	tbl := New()
	tbl.Add("a", types.KindVariable, types.GlobalScope, 0, nil)
	tbl.Add("b", types.KindVariable, 4, 3, nil)
	tbl.Add("c", types.KindVariable, 4, 5, nil)
	tbl.Add("d", types.KindVariable, 8, 9, nil)

	removed := tbl.RemoveRange(3, 9)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 2, tbl.Len())

	// End line is exclusive.
	require.Contains(t, tbl.InScope(8), "d")
	require.Contains(t, tbl.InScope(types.GlobalScope), "a")

	// Scope 4 emptied out and was dropped entirely.
	assert.Nil(t, tbl.InScope(4))
}

func TestRemoveRangeEmpty(t *testing.T) {
	tbl := New()
	tbl.Add("a", types.KindVariable, types.GlobalScope, 0, nil)

	assert.Equal(t, 0, tbl.RemoveRange(5, 10))
	assert.Equal(t, 1, tbl.Len())
}

func TestVisibleShadowing(t *testing.T) {
	tbl := New()
	tbl.Add("x", types.KindVariable, types.GlobalScope, 0, nil)
	tbl.Add("x", types.KindVariable, 4, 3, nil)
	tbl.Add("y", types.KindVariable, types.GlobalScope, 1, nil)

	visible := tbl.Visible([]types.ScopeID{types.GlobalScope, 4})
	require.Len(t, visible, 2)

	// Sorted by name; the inner x shadows the outer one.
	assert.Equal(t, "x", visible[0].Name)
	assert.Equal(t, types.ScopeID(4), visible[0].Scope)
	assert.Equal(t, "y", visible[1].Name)
}

func TestVisibleEmptyStack(t *testing.T) {
	tbl := New()
	tbl.Add("x", types.KindVariable, types.GlobalScope, 0, nil)
	assert.Empty(t, tbl.Visible(nil))
}

func TestAllOrdering(t *testing.T) {
	tbl := New()
	tbl.Add("zeta", types.KindVariable, types.GlobalScope, 2, nil)
	tbl.Add("alpha", types.KindVariable, types.GlobalScope, 2, nil)
	tbl.Add("mid", types.KindVariable, 4, 2, nil)
	tbl.Add("first", types.KindFunction, types.GlobalScope, 0, nil)

	all := tbl.All()
	require.Len(t, all, 4)
	assert.Equal(t, "first", all[0].Name)
	assert.Equal(t, "alpha", all[1].Name)
	assert.Equal(t, "zeta", all[2].Name)
	assert.Equal(t, "mid", all[3].Name)
}

func TestSnapshotRestoreIndependence(t *testing.T) {
	tbl := New()
	tbl.Add("a", types.KindVariable, types.GlobalScope, 0, nil)
	tbl.Add("b", types.KindVariable, 4, 2, nil)

	snap := tbl.Snapshot()

	// Mutations after the snapshot do not leak into it.
	tbl.Add("c", types.KindVariable, types.GlobalScope, 5, nil)
	tbl.RemoveRange(2, 3)

	restored := New()
	restored.Restore(snap)
	assert.Equal(t, 2, restored.Len())
	require.Contains(t, restored.InScope(4), "b")

	// Restoring twice from the same snapshot works; Restore copies.
	restored.Add("d", types.KindVariable, 4, 9, nil)
	again := New()
	again.Restore(snap)
	assert.Equal(t, 2, again.Len())
}

func TestClear(t *testing.T) {
	tbl := New()
	tbl.Add("a", types.KindVariable, types.GlobalScope, 0, nil)
	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	assert.Empty(t, tbl.All())
}

func TestEnterScope(t *testing.T) {
	tbl := New()
	tbl.EnterScope(4)
	assert.NotNil(t, tbl.InScope(4))
	assert.Equal(t, 0, tbl.Len())

	tbl.Add("x", types.KindVariable, 4, 0, nil)
	tbl.EnterScope(4)
	assert.Equal(t, 1, tbl.Len(), "re-entering a scope keeps its symbols")
}
