// Package tokenstore answers adjacency queries over a token stream and its
// comments: the token before or after a position, the first or last token of
// a node, the tokens between two nodes, with or without comments.
package tokenstore

import (
	"math"
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// Store indexes a sorted token slice and a sorted comment slice.
//
// The slices are retained, not copied, and must not be modified afterwards.
// A Store is safe for concurrent use.
type Store struct {
	tokens   []*ast.Token
	comments []*ast.Token
}

// New creates a Store. Both slices must be sorted by start offset and free
// of overlaps.
func New(tokens, comments []*ast.Token) *Store {
	return &Store{
		tokens:   tokens,
		comments: comments,
	}
}

func (s *Store) forward(from, upper int, opts Options) *cursor {
	return newForward(s.tokens, s.comments, from, upper, opts.IncludeComments)
}

func (s *Store) backward(from, lower int, opts Options) *cursor {
	return newBackward(s.tokens, s.comments, from, lower, opts.IncludeComments)
}

// first returns the entry at position opts.Skip among the accepted entries.
func first(c *cursor, opts Options) *ast.Token {
	skip := opts.Skip
	for tok := c.next(); tok != nil; tok = c.next() {
		if !opts.accepts(tok) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		return tok
	}
	return nil
}

// collect gathers accepted entries after skipping opts.Skip of them, up to
// opts.Count when it is positive.
func collect(c *cursor, opts Options) []*ast.Token {
	var result []*ast.Token
	skip := opts.Skip
	for tok := c.next(); tok != nil; tok = c.next() {
		if !opts.accepts(tok) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		result = append(result, tok)
		if opts.Count > 0 && len(result) == opts.Count {
			break
		}
	}
	return result
}

// collectBackward is collect for backward cursors, returned in source order.
func collectBackward(c *cursor, opts Options) []*ast.Token {
	result := collect(c, opts)
	slices.Reverse(result)
	return result
}

// TokenBefore returns the token ending at or before the start of r.
func (s *Store) TokenBefore(r ast.Ranged, opts Options) *ast.Token {
	return first(s.backward(r.Span().Start, 0, opts), opts)
}

// TokenAfter returns the token starting at or after the end of r.
func (s *Store) TokenAfter(r ast.Ranged, opts Options) *ast.Token {
	return first(s.forward(r.Span().End, math.MaxInt, opts), opts)
}

// TokensBefore returns the tokens preceding r, closest last.
func (s *Store) TokensBefore(r ast.Ranged, opts Options) []*ast.Token {
	return collectBackward(s.backward(r.Span().Start, 0, opts), opts)
}

// TokensAfter returns the tokens following r, closest first.
func (s *Store) TokensAfter(r ast.Ranged, opts Options) []*ast.Token {
	return collect(s.forward(r.Span().End, math.MaxInt, opts), opts)
}

// FirstToken returns the first token inside r.
func (s *Store) FirstToken(r ast.Ranged, opts Options) *ast.Token {
	span := r.Span()
	return first(s.forward(span.Start, span.End, opts), opts)
}

// FirstTokens returns the leading tokens inside r.
func (s *Store) FirstTokens(r ast.Ranged, opts Options) []*ast.Token {
	span := r.Span()
	return collect(s.forward(span.Start, span.End, opts), opts)
}

// LastToken returns the last token inside r.
func (s *Store) LastToken(r ast.Ranged, opts Options) *ast.Token {
	span := r.Span()
	return first(s.backward(span.End, span.Start, opts), opts)
}

// LastTokens returns the trailing tokens inside r, in source order.
func (s *Store) LastTokens(r ast.Ranged, opts Options) []*ast.Token {
	span := r.Span()
	return collectBackward(s.backward(span.End, span.Start, opts), opts)
}

// TokensOf returns the tokens inside r.
func (s *Store) TokensOf(r ast.Ranged, opts Options) []*ast.Token {
	return s.FirstTokens(r, opts)
}

// TokensWithPadding returns the tokens inside r together with up to before
// tokens preceding it and after tokens following it. Comments are excluded.
func (s *Store) TokensWithPadding(r ast.Ranged, before, after int) []*ast.Token {
	var result []*ast.Token
	if before > 0 {
		result = append(result, s.TokensBefore(r, Options{Count: before})...)
	}
	result = append(result, s.TokensOf(r, Options{})...)
	if after > 0 {
		result = append(result, s.TokensAfter(r, Options{Count: after})...)
	}
	return result
}

// FirstTokenBetween returns the first token between left and right.
func (s *Store) FirstTokenBetween(left, right ast.Ranged, opts Options) *ast.Token {
	return first(s.forward(left.Span().End, right.Span().Start, opts), opts)
}

// LastTokenBetween returns the last token between left and right.
func (s *Store) LastTokenBetween(left, right ast.Ranged, opts Options) *ast.Token {
	return first(s.backward(right.Span().Start, left.Span().End, opts), opts)
}

// TokensBetween returns the tokens between left and right.
func (s *Store) TokensBetween(left, right ast.Ranged, opts Options) []*ast.Token {
	return collect(s.forward(left.Span().End, right.Span().Start, opts), opts)
}

// TokenByRangeStart returns the token, or comment when includeComments is
// set, that starts exactly at offset.
func (s *Store) TokenByRangeStart(offset int, includeComments bool) *ast.Token {
	if idx := firstStartingAt(s.tokens, offset); idx < len(s.tokens) && s.tokens[idx].Range.Start == offset {
		return s.tokens[idx]
	}
	if includeComments {
		if idx := firstStartingAt(s.comments, offset); idx < len(s.comments) && s.comments[idx].Range.Start == offset {
			return s.comments[idx]
		}
	}
	return nil
}

// CommentsBefore returns the comments directly preceding r, with no token
// in between, in source order.
func (s *Store) CommentsBefore(r ast.Ranged) []*ast.Token {
	c := s.backward(r.Span().Start, 0, WithComments())
	var result []*ast.Token
	for tok := c.next(); tok != nil && tok.IsComment(); tok = c.next() {
		result = append(result, tok)
	}
	slices.Reverse(result)
	return result
}

// CommentsAfter returns the comments directly following r, with no token in
// between.
func (s *Store) CommentsAfter(r ast.Ranged) []*ast.Token {
	c := s.forward(r.Span().End, math.MaxInt, WithComments())
	var result []*ast.Token
	for tok := c.next(); tok != nil && tok.IsComment(); tok = c.next() {
		result = append(result, tok)
	}
	return result
}

// CommentsInside returns every comment lying within r.
func (s *Store) CommentsInside(r ast.Ranged) []*ast.Token {
	span := r.Span()
	var result []*ast.Token
	for idx := firstStartingAt(s.comments, span.Start); idx < len(s.comments); idx++ {
		if s.comments[idx].Range.End > span.End {
			break
		}
		result = append(result, s.comments[idx])
	}
	return result
}

// CommentsExistBetween reports whether any comment lies between the end of
// left and the start of right.
func (s *Store) CommentsExistBetween(left, right ast.Ranged) bool {
	idx := firstStartingAt(s.comments, left.Span().End)
	return idx < len(s.comments) && s.comments[idx].Range.End <= right.Span().Start
}
