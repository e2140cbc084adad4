package sourcecode

import (
	"sort"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// mergeTrivia interleaves two start-sorted slices into one stream ordered by
// start offset. On equal starts the token comes first. Inputs are trusted to
// be sorted.
func mergeTrivia(tokens, comments []*ast.Token) []*ast.Token {
	merged := make([]*ast.Token, 0, len(tokens)+len(comments))

	ti, ci := 0, 0
	for ti < len(tokens) || ci < len(comments) {
		if ci >= len(comments) || (ti < len(tokens) && tokens[ti].Range.Start <= comments[ci].Range.Start) {
			merged = append(merged, tokens[ti])
			ti++
		} else {
			merged = append(merged, comments[ci])
			ci++
		}
	}

	return merged
}

// lastEndingAt returns the index in the merged stream of the last entry
// ending at or before offset, or -1.
func (s *SourceCode) lastEndingAt(offset int) int {
	merged := s.tokensAndComments
	return sort.Search(len(merged), func(i int) bool {
		return merged[i].Range.End > offset
	}) - 1
}

// firstStartingAt returns the index in the merged stream of the first entry
// starting at or after offset, or the stream length.
func (s *SourceCode) firstStartingAt(offset int) int {
	merged := s.tokensAndComments
	return sort.Search(len(merged), func(i int) bool {
		return merged[i].Range.Start >= offset
	})
}

// entryBefore returns the last token or comment ending at or before offset.
func (s *SourceCode) entryBefore(offset int) *ast.Token {
	if idx := s.lastEndingAt(offset); idx >= 0 {
		return s.tokensAndComments[idx]
	}
	return nil
}
