package sourcecode

import (
	"strings"
	"unicode"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/tokenstore"
)

// Overlaps reports whether the ranges of a and b intersect or touch.
func Overlaps(a, b ast.Ranged) bool {
	ra, rb := a.Span(), b.Span()
	return (ra.Start <= rb.Start && ra.End >= rb.Start) ||
		(rb.Start <= ra.Start && rb.End >= ra.Start)
}

// IsSpaceBetween reports whether any whitespace separates a and b. Comments
// between them count as content, so only the gaps around them matter.
// Overlapping or touching items never have space between them.
func (s *SourceCode) IsSpaceBetween(a, b ast.Ranged) bool {
	return s.isSpaceBetween(a, b, false)
}

// IsSpaceBetweenLegacy is IsSpaceBetween that also treats whitespace inside
// JSXText tokens lying between a and b as space.
func (s *SourceCode) IsSpaceBetweenLegacy(a, b ast.Ranged) bool {
	return s.isSpaceBetween(a, b, true)
}

func (s *SourceCode) isSpaceBetween(a, b ast.Ranged, jsxText bool) bool {
	if Overlaps(a, b) {
		return false
	}

	earlier, later := a, b
	if a.Span().End > b.Span().Start {
		earlier, later = b, a
	}

	end := s.lastTokenOrSelf(earlier).Span().End
	finalStart := s.firstTokenOrSelf(later).Span().Start

	for idx := s.firstStartingAt(end); idx < len(s.tokensAndComments); idx++ {
		next := s.tokensAndComments[idx]
		if next.Range.Start >= finalStart {
			break
		}
		if next.Range.Start != end {
			return true
		}
		if jsxText && next.Type == ast.TokJSXText && containsSpace(next.Value) {
			return true
		}
		end = next.Range.End
	}

	return end != finalStart
}

func (s *SourceCode) lastTokenOrSelf(r ast.Ranged) ast.Ranged {
	if tok := s.LastToken(r, tokenstore.Options{}); tok != nil {
		return tok
	}
	return r
}

func (s *SourceCode) firstTokenOrSelf(r ast.Ranged) ast.Ranged {
	if tok := s.FirstToken(r, tokenstore.Options{}); tok != nil {
		return tok
	}
	return r
}

func containsSpace(value string) bool {
	return strings.ContainsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
