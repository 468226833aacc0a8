// Package analyzer implements the profile-driven incremental code
// analyzer. One Analyzer owns the full analysis state for one document:
// the scope stack, the symbol table, token spans, and the previous
// analysis snapshot used by the incremental heuristic.
package analyzer

import (
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/lpa/internal/debug"
	"github.com/standardbeagle/lpa/internal/profile"
	"github.com/standardbeagle/lpa/internal/symtab"
	"github.com/standardbeagle/lpa/internal/types"
)

// DefaultLanguage is used when Options.Language is empty.
const DefaultLanguage = "python"

// Thresholds above which a change is too structurally disruptive for
// line-aligned incremental reasoning.
const (
	DefaultMaxChangeRatio = 0.4
	DefaultMaxGrowthRatio = 0.15
)

// Options configures an Analyzer.
type Options struct {
	// Language selects the profile; unknown names resolve to generic.
	Language string

	// MaxChangeRatio is the changed-line fraction (in either the old or
	// new text) above which analysis falls back to full. Zero means the
	// default.
	MaxChangeRatio float64

	// MaxGrowthRatio is the relative line-count delta above which
	// analysis falls back to full. Zero means the default.
	MaxGrowthRatio float64
}

// Strategy names the analysis path taken by the last Analyze call.
type Strategy string

const (
	StrategyFull        Strategy = "full"
	StrategyIncremental Strategy = "incremental"
)

// Stats summarizes the last Analyze call.
type Stats struct {
	Strategy Strategy
	Duration time.Duration
	Lines    int
	Symbols  int
	Tokens   int
}

// constructContext tracks the innermost enclosing function or class.
type constructContext struct {
	name  string
	kind  types.SymbolKind
	scope types.ScopeID
}

// Analyzer analyzes one document. Not safe for concurrent use; each
// concurrently analyzed document needs its own Analyzer. The registry
// it reads profiles from is immutable and freely shared.
type Analyzer struct {
	language string
	profile  *profile.Profile
	symbols  *symtab.Table
	opts     Options

	scopeStack   []types.ScopeID
	currentScope types.ScopeID
	lineStates   map[int]types.LineState

	currentFunction *constructContext
	currentClass    *constructContext

	currentText string
	hasText     bool
	lineCount   int
	tokenSpans  []types.TokenSpan
	lineHashes  map[int]uint64

	prevText       string
	hasPrev        bool
	prevLineHashes map[int]uint64
	prevLineStates map[int]types.LineState
	prevSymbols    map[types.ScopeID]map[string]types.SymbolInfo
	prevTokenSpans []types.TokenSpan

	stats Stats
}

// New creates an analyzer bound to a profile from registry.
func New(registry *profile.Registry, opts Options) *Analyzer {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.MaxChangeRatio <= 0 {
		opts.MaxChangeRatio = DefaultMaxChangeRatio
	}
	if opts.MaxGrowthRatio <= 0 {
		opts.MaxGrowthRatio = DefaultMaxGrowthRatio
	}

	a := &Analyzer{
		language: strings.ToLower(opts.Language),
		profile:  registry.Get(opts.Language),
		symbols:  symtab.New(),
		opts:     opts,
	}
	a.resetAnalysisState()
	return a
}

// Language returns the analyzer's resolved language name.
func (a *Analyzer) Language() string {
	return a.language
}

// Profile returns the immutable profile driving this analyzer.
func (a *Analyzer) Profile() *profile.Profile {
	return a.profile
}

// LastStats summarizes the most recent Analyze call.
func (a *Analyzer) LastStats() Stats {
	return a.stats
}

// resetAnalysisState clears the per-run analysis state: scope stack,
// line states, construct context, symbol table, and token spans. The
// previous-analysis snapshot is deliberately untouched; it belongs to
// Analyze's bookkeeping, not to a single run.
func (a *Analyzer) resetAnalysisState() {
	a.scopeStack = []types.ScopeID{types.GlobalScope}
	a.currentScope = types.GlobalScope
	a.lineStates = map[int]types.LineState{-1: types.SentinelLineState}
	a.currentFunction = nil
	a.currentClass = nil
	a.symbols.Clear()
	a.tokenSpans = nil
}

// Analyze runs a full or incremental analysis of text. It never fails:
// degraded profiles simply detect less. Safe to call repeatedly with
// identical text; outputs are identical on every call.
func (a *Analyzer) Analyze(text string) {
	start := time.Now()

	// Snapshot the previous analysis before anything mutates.
	a.prevText = a.currentText
	a.hasPrev = a.hasText
	a.prevLineHashes = a.lineHashes
	a.prevLineStates = copyLineStates(a.lineStates)
	a.prevSymbols = a.symbols.Snapshot()
	a.prevTokenSpans = a.tokenSpans

	a.currentText = text
	a.hasText = true
	lines := strings.Split(text, "\n")
	a.lineCount = len(lines)

	a.lineHashes = make(map[int]uint64, len(lines))
	for i, line := range lines {
		a.lineHashes[i] = xxhash.Sum64String(line)
	}

	strategy := StrategyFull
	if a.hasPrev && a.shouldAttemptIncremental(lines, strings.Split(a.prevText, "\n")) {
		strategy = StrategyIncremental
		debug.LogAnalyze("attempting incremental analysis (%s)", a.language)
		a.setupIncremental()
	} else {
		debug.LogAnalyze("performing full analysis (%s)", a.language)
		a.resetAnalysisState()
	}

	// Both strategies run the same per-line pass over every line of the
	// new text. The incremental path differs only in its seed state: it
	// keeps the previous symbol table contents instead of clearing them,
	// preserving accumulated symbol context across small edits.
	offset := 0
	for i, line := range lines {
		a.resolveLineScope(i, line)
		a.scanTokens(line, offset)
		a.scanConstructs(i, line, a.lineStates[i].Scope)
		offset += len(line)
		if i < len(lines)-1 {
			offset++ // newline
		}
	}

	a.finalize(start, strategy)
}

// shouldAttemptIncremental decides whether a line-aligned incremental
// pass is safe for the new text given the previous snapshot.
func (a *Analyzer) shouldAttemptIncremental(currentLines, prevLines []string) bool {
	if len(a.prevLineHashes) == 0 || len(prevLines) == 0 {
		return false
	}

	changedCurrent := 0
	for i := range currentLines {
		if prev, ok := a.prevLineHashes[i]; !ok || prev != a.lineHashes[i] {
			changedCurrent++
		}
	}
	changedPrev := 0
	for i := range prevLines {
		if cur, ok := a.lineHashes[i]; !ok || cur != a.prevLineHashes[i] {
			changedPrev++
		}
	}

	changeRatioCurrent := float64(changedCurrent) / float64(max(len(currentLines), 1))
	changeRatioPrev := float64(changedPrev) / float64(max(len(prevLines), 1))
	growth := len(currentLines) - len(prevLines)
	if growth < 0 {
		growth = -growth
	}
	growthRatio := float64(growth) / float64(max(len(prevLines), 1))

	if changeRatioCurrent > a.opts.MaxChangeRatio ||
		changeRatioPrev > a.opts.MaxChangeRatio ||
		growthRatio > a.opts.MaxGrowthRatio {
		debug.LogAnalyze("change too large for incremental: cur=%.2f prev=%.2f growth=%.2f",
			changeRatioCurrent, changeRatioPrev, growthRatio)
		return false
	}
	return true
}

// setupIncremental seeds the run from the previous snapshot: line
// states and symbol table carry over, everything recomputed per line is
// reset. Scope, tokens, and symbols are still fully re-derived by the
// per-line pass; only the symbol seed differs from a full run.
func (a *Analyzer) setupIncremental() {
	a.lineStates = copyLineStates(a.prevLineStates)
	a.symbols.Restore(a.prevSymbols)
	a.tokenSpans = nil
	a.scopeStack = []types.ScopeID{types.GlobalScope}
	a.currentScope = types.GlobalScope
	a.currentFunction = nil
	a.currentClass = nil
}

// finalize normalizes the scope stack and records run statistics.
func (a *Analyzer) finalize(start time.Time, strategy Strategy) {
	if len(a.scopeStack) == 0 {
		a.scopeStack = append(a.scopeStack, types.GlobalScope)
	}
	a.currentScope = a.scopeStack[len(a.scopeStack)-1]

	a.stats = Stats{
		Strategy: strategy,
		Duration: time.Since(start),
		Lines:    a.lineCount,
		Symbols:  a.symbols.Len(),
		Tokens:   len(a.tokenSpans),
	}
	debug.LogAnalyze("analysis completed in %s: %d lines, %d symbols, %d tokens",
		a.stats.Duration, a.stats.Lines, a.stats.Symbols, a.stats.Tokens)
}

// TokenSpans returns the syntax token spans of the most recently
// analyzed text as half-open byte-offset ranges.
func (a *Analyzer) TokenSpans() []types.TokenSpan {
	spans := make([]types.TokenSpan, len(a.tokenSpans))
	copy(spans, a.tokenSpans)
	return spans
}

// Symbols returns all detected symbols sorted by (line, scope, name).
func (a *Analyzer) Symbols() []types.SymbolInfo {
	return a.symbols.All()
}

// SymbolTable exposes the analyzer's symbol table for hosts that manage
// invalidation themselves (bulk deletions).
func (a *Analyzer) SymbolTable() *symtab.Table {
	return a.symbols
}

// LineStates returns the resolved indent and scope of every line of the
// most recently analyzed text.
func (a *Analyzer) LineStates() []types.LineState {
	states := make([]types.LineState, a.lineCount)
	for i := 0; i < a.lineCount; i++ {
		states[i] = a.lineStates[i]
	}
	return states
}

func copyLineStates(states map[int]types.LineState) map[int]types.LineState {
	copied := make(map[int]types.LineState, len(states))
	for k, v := range states {
		copied[k] = v
	}
	return copied
}
