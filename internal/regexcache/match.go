package regexcache

import (
	"regexp"

	"github.com/standardbeagle/lpa/internal/debug"
)

// Matching-time failures on a single line must never take down the
// analysis of the rest of the document. regexp itself does not panic on
// input, but profile-supplied patterns run against arbitrary editor
// text and the contract is degrade-per-pattern, so every execution is
// fenced.

// FindAllIndex returns all non-overlapping match ranges of re in line.
// Returns nil for a nil pattern or if execution panics.
func FindAllIndex(re *regexp.Regexp, line string) (spans [][]int) {
	if re == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			debug.LogPatterns("match panic for %q: %v", re.String(), r)
			spans = nil
		}
	}()
	return re.FindAllStringIndex(line, -1)
}

// FindSubmatch returns the first match of re in line with its capture
// groups, or nil on no match, nil pattern, or panic.
func FindSubmatch(re *regexp.Regexp, line string) (groups []string) {
	if re == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			debug.LogPatterns("match panic for %q: %v", re.String(), r)
			groups = nil
		}
	}()
	return re.FindStringSubmatch(line)
}

// Matches reports whether re matches anywhere in line, false on nil
// pattern or panic.
func Matches(re *regexp.Regexp, line string) (ok bool) {
	if re == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			debug.LogPatterns("match panic for %q: %v", re.String(), r)
			ok = false
		}
	}()
	return re.MatchString(line)
}
