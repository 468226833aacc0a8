package analyzer

import (
	"github.com/standardbeagle/lpa/internal/regexcache"
	"github.com/standardbeagle/lpa/internal/types"
)

// scanTokens records every non-overlapping match of every syntax token
// pattern on the raw line text. offset is the byte offset of the line's
// first character in the whole document, so recorded spans index
// directly into the analyzed text.
func (a *Analyzer) scanTokens(line string, offset int) {
	for _, kind := range a.profile.TokenOrder {
		re := a.profile.SyntaxTokens[kind]
		for _, span := range regexcache.FindAllIndex(re, line) {
			a.tokenSpans = append(a.tokenSpans, types.TokenSpan{
				Start: offset + span[0],
				End:   offset + span[1],
				Kind:  kind,
			})
		}
	}
}
