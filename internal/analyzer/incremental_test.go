package analyzer

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomDocument builds a plausible python-like document whose symbol
// set is stable under RHS edits of its assignment lines.
func randomDocument(rng *rand.Rand, lines int) []string {
	doc := make([]string, 0, lines)
	for i := 0; i < lines; i++ {
		switch rng.Intn(5) {
		case 0:
			doc = append(doc, fmt.Sprintf("def fn%d(p%d):", i, i))
			doc = append(doc, fmt.Sprintf("    local%d = p%d", i, i))
			i++
		case 1:
			doc = append(doc, fmt.Sprintf("# comment %d", rng.Intn(100)))
		case 2:
			doc = append(doc, "")
		default:
			doc = append(doc, fmt.Sprintf("value%d = %d", i, rng.Intn(1000)))
		}
	}
	return doc
}

// editableLines returns the indices whose content can change without
// changing the symbols the line produces.
func editableLines(doc []string) []int {
	var idx []int
	for i, line := range doc {
		if strings.HasPrefix(line, "#") || strings.Contains(line, " = ") {
			idx = append(idx, i)
		}
	}
	return idx
}

func TestIncrementalEquivalenceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 25; trial++ {
		doc := randomDocument(rng, 20+rng.Intn(20))
		editable := editableLines(doc)
		require.NotEmpty(t, editable)

		edited := make([]string, len(doc))
		copy(edited, doc)
		i := editable[rng.Intn(len(editable))]
		if strings.HasPrefix(edited[i], "#") {
			edited[i] = fmt.Sprintf("# rewritten %d", rng.Intn(100))
		} else {
			head := edited[i][:strings.Index(edited[i], " = ")]
			edited[i] = fmt.Sprintf("%s = %d", head, 1000+rng.Intn(1000))
		}

		a := newTestAnalyzer(t, "python")
		a.Analyze(strings.Join(doc, "\n"))
		a.Analyze(strings.Join(edited, "\n"))
		require.Equal(t, StrategyIncremental, a.LastStats().Strategy,
			"trial %d: single-line edit must stay incremental", trial)

		fresh := newTestAnalyzer(t, "python")
		fresh.Analyze(strings.Join(edited, "\n"))

		assert.Equal(t, fresh.Symbols(), a.Symbols(), "trial %d symbols", trial)
		assert.Equal(t, fresh.TokenSpans(), a.TokenSpans(), "trial %d tokens", trial)
		assert.Equal(t, fresh.LineStates(), a.LineStates(), "trial %d line states", trial)
	}
}
