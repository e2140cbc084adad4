package tokenstore

import (
	"sort"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// cursor iterates tokens, and optionally comments, in one direction while
// interleaving the two sorted slices by start offset. Entries outside
// [lower, upper] are never returned.
type cursor struct {
	tokens   []*ast.Token
	comments []*ast.Token

	// Next candidate index in each slice. Backward cursors count down.
	ti, ci int

	includeComments bool
	backward        bool
	lower, upper    int
}

// newForward positions a cursor at the first entry starting at or after from.
func newForward(tokens, comments []*ast.Token, from, upper int, includeComments bool) *cursor {
	return &cursor{
		tokens:          tokens,
		comments:        comments,
		ti:              firstStartingAt(tokens, from),
		ci:              firstStartingAt(comments, from),
		includeComments: includeComments,
		lower:           from,
		upper:           upper,
	}
}

// newBackward positions a cursor at the last entry ending at or before from.
func newBackward(tokens, comments []*ast.Token, from, lower int, includeComments bool) *cursor {
	return &cursor{
		tokens:          tokens,
		comments:        comments,
		ti:              lastEndingAt(tokens, from),
		ci:              lastEndingAt(comments, from),
		includeComments: includeComments,
		backward:        true,
		lower:           lower,
		upper:           from,
	}
}

// next returns the next entry, or nil once the cursor is exhausted.
func (c *cursor) next() *ast.Token {
	if c.backward {
		return c.prevEntry()
	}
	return c.nextEntry()
}

func (c *cursor) nextEntry() *ast.Token {
	var tok, com *ast.Token
	if c.ti < len(c.tokens) {
		tok = c.tokens[c.ti]
	}
	if c.includeComments && c.ci < len(c.comments) {
		com = c.comments[c.ci]
	}

	var picked *ast.Token
	switch {
	case tok == nil && com == nil:
		return nil
	case com == nil || (tok != nil && tok.Range.Start <= com.Range.Start):
		// Tokens win ties so zero-width entries keep a stable order.
		picked = tok
		c.ti++
	default:
		picked = com
		c.ci++
	}

	if picked.Range.End > c.upper {
		return nil
	}
	return picked
}

func (c *cursor) prevEntry() *ast.Token {
	var tok, com *ast.Token
	if c.ti >= 0 && c.ti < len(c.tokens) {
		tok = c.tokens[c.ti]
	}
	if c.includeComments && c.ci >= 0 && c.ci < len(c.comments) {
		com = c.comments[c.ci]
	}

	var picked *ast.Token
	switch {
	case tok == nil && com == nil:
		return nil
	case com == nil || (tok != nil && tok.Range.Start > com.Range.Start):
		picked = tok
		c.ti--
	default:
		picked = com
		c.ci--
	}

	if picked.Range.Start < c.lower {
		return nil
	}
	return picked
}

// firstStartingAt returns the index of the first entry whose start is at or
// after offset, or len(entries).
func firstStartingAt(entries []*ast.Token, offset int) int {
	return sort.Search(len(entries), func(i int) bool {
		return entries[i].Range.Start >= offset
	})
}

// lastEndingAt returns the index of the last entry whose end is at or
// before offset, or -1.
func lastEndingAt(entries []*ast.Token, offset int) int {
	return sort.Search(len(entries), func(i int) bool {
		return entries[i].Range.End > offset
	}) - 1
}
