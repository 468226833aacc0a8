// Package regexcache compiles profile pattern strings into regular
// expressions and caches the results process-wide. Identical pattern
// strings repeated across language profiles (string literals, number
// forms) compile once.
//
// Compilation never fails from the caller's view: an invalid pattern
// degrades to a nil slot and the failure is remembered so it is not
// recompiled on every load.
package regexcache

import (
	"container/list"
	"regexp"
	"sync"
	"time"

	"github.com/standardbeagle/lpa/internal/debug"
)

// Entry is one cached compilation result. Compiled is nil when the
// pattern failed to compile; the entry still occupies a cache slot so
// the failure is not retried.
type Entry struct {
	Pattern      string
	Compiled     *regexp.Regexp
	LastAccessed time.Time
	AccessCount  int64

	elem *list.Element
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Failures  int64
	Requests  int64
}

// Cache is an LRU cache of compiled patterns.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	lru     *list.List

	maxSize          int
	maxPatternLength int

	stats Stats
}

// DefaultMaxSize bounds the shared cache. Profiles across a dozen
// languages stay well under this.
const DefaultMaxSize = 1024

// NewCache creates a cache holding up to maxSize compiled patterns.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		entries:          make(map[string]*Entry),
		lru:              list.New(),
		maxSize:          maxSize,
		maxPatternLength: 1000,
	}
}

// shared is the process-wide cache used by profile compilation.
var shared = NewCache(DefaultMaxSize)

// Compile compiles pattern through the shared process-wide cache.
// An empty pattern and a failed compile both yield nil.
func Compile(pattern string) *regexp.Regexp {
	return shared.Compile(pattern)
}

// SharedStats returns counters for the shared cache.
func SharedStats() Stats {
	return shared.GetStats()
}

// Compile returns the compiled form of pattern, consulting the cache
// first. Patterns compile in single-line DOTALL mode so `.` crosses
// nothing less than the matched line the analyzer feeds in, matching
// how profile authors write token patterns.
func (c *Cache) Compile(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	if len(pattern) > c.maxPatternLength {
		// Too long to cache; compile directly.
		re, err := regexp.Compile("(?s)" + pattern)
		if err != nil {
			debug.LogPatterns("compile failed (uncached %q...): %v", pattern[:30], err)
			return nil
		}
		return re
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Requests++

	if e, ok := c.entries[pattern]; ok {
		e.LastAccessed = time.Now()
		e.AccessCount++
		c.lru.MoveToFront(e.elem)
		c.stats.Hits++
		return e.Compiled
	}

	c.stats.Misses++

	compiled, err := regexp.Compile("(?s)" + pattern)
	if err != nil {
		compiled = nil
		c.stats.Failures++
		debug.LogPatterns("compile failed: %q: %v", truncate(pattern, 40), err)
	}

	if len(c.entries) >= c.maxSize {
		c.evict()
	}

	e := &Entry{
		Pattern:      pattern,
		Compiled:     compiled,
		LastAccessed: time.Now(),
		AccessCount:  1,
	}
	e.elem = c.lru.PushFront(e)
	c.entries[pattern] = e

	return compiled
}

// evict removes the least recently used entry. Caller holds the lock.
func (c *Cache) evict() {
	back := c.lru.Back()
	if back == nil {
		return
	}
	e := back.Value.(*Entry)
	delete(c.entries, e.Pattern)
	c.lru.Remove(back)
	c.stats.Evictions++
}

// GetStats returns a copy of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all entries and resets counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.lru = list.New()
	c.stats = Stats{}
}

// HitRatio returns the fraction of requests served from cache.
func (c *Cache) HitRatio() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(c.stats.Hits) / float64(total)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
