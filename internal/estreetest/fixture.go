// Package estreetest builds ESTree fixtures for tests: it lexes a snippet
// of JavaScript into tokens and comments and creates nodes whose ranges and
// locations are taken from the snippet text.
package estreetest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// Fixture is a lexed source text.
type Fixture struct {
	Text     string
	Tokens   []*ast.Token
	Comments []*ast.Token

	lineStarts []int
}

// New lexes text. It panics on input the lexer does not understand.
// Tokens and Comments are never nil, so trees built from text without
// tokens or comments still carry both streams.
func New(text string) *Fixture {
	f := &Fixture{
		Text:       text,
		Tokens:     []*ast.Token{},
		Comments:   []*ast.Token{},
		lineStarts: lineStarts(text),
	}
	f.lex()
	return f
}

// Pos returns the line/column position of offset.
func (f *Fixture) Pos(offset int) ast.Position {
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	return ast.Position{Line: line, Column: offset - f.lineStarts[line-1]}
}

// Loc returns the location of r.
func (f *Fixture) Loc(r ast.Range) ast.SourceLocation {
	return ast.SourceLocation{Start: f.Pos(r.Start), End: f.Pos(r.End)}
}

// Span returns the range of the nth (0-based) occurrence of snippet.
func (f *Fixture) Span(snippet string, nth int) ast.Range {
	from := 0
	for i := 0; ; i++ {
		idx := strings.Index(f.Text[from:], snippet)
		if idx < 0 {
			panic(fmt.Sprintf("estreetest: occurrence %d of %q not found", nth, snippet))
		}
		start := from + idx
		if i == nth {
			return ast.Range{Start: start, End: start + len(snippet)}
		}
		from = start + 1
	}
}

// Node creates a node of nodeType spanning the first occurrence of snippet.
func (f *Fixture) Node(nodeType, snippet string) *ast.Node {
	return f.NodeNth(nodeType, snippet, 0)
}

// NodeNth creates a node spanning the nth occurrence of snippet.
func (f *Fixture) NodeNth(nodeType, snippet string, nth int) *ast.Node {
	return f.NodeRange(nodeType, f.Span(snippet, nth))
}

// NodeRange creates a node spanning r.
func (f *Fixture) NodeRange(nodeType string, r ast.Range) *ast.Node {
	n := ast.NewNode(nodeType)
	ast.SetRange(n, r, f.Loc(r))
	return n
}

// Ident creates an Identifier node for the nth occurrence of name.
func (f *Fixture) Ident(name string, nth int) *ast.Node {
	n := f.NodeNth(ast.TypeIdentifier, name, nth)
	n.Name = name
	return n
}

// Program creates a Program spanning the whole text with the given body.
func (f *Fixture) Program(body ...*ast.Node) *ast.Node {
	program := f.NodeRange(ast.TypeProgram, ast.Range{Start: 0, End: len(f.Text)})
	ast.SetList(program, "body", body...)
	return program
}

// Tree wires parent links under root and returns the complete tree.
func (f *Fixture) Tree(root *ast.Node) *ast.Tree {
	ast.AttachParents(root)
	return &ast.Tree{Root: root, Tokens: f.Tokens, Comments: f.Comments}
}

// Token returns the token or comment starting at the nth occurrence of
// snippet.
func (f *Fixture) Token(snippet string, nth int) *ast.Token {
	start := f.Span(snippet, nth).Start
	for _, tok := range append(append([]*ast.Token{}, f.Tokens...), f.Comments...) {
		if tok.Range.Start == start {
			return tok
		}
	}
	panic(fmt.Sprintf("estreetest: no token starts at %q", snippet))
}

func (f *Fixture) add(tokType ast.TokenType, value string, start, end int) {
	tok := &ast.Token{
		Type:  tokType,
		Value: value,
		Range: ast.Range{Start: start, End: end},
		Loc:   f.Loc(ast.Range{Start: start, End: end}),
	}
	if tokType.IsComment() {
		f.Comments = append(f.Comments, tok)
		return
	}
	f.Tokens = append(f.Tokens, tok)
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n':
			i++
			starts = append(starts, i+1)
		case text[i] == '\r' || text[i] == '\n':
			starts = append(starts, i+1)
		case strings.HasPrefix(text[i:], "\u2028") || strings.HasPrefix(text[i:], "\u2029"):
			i += 2
			starts = append(starts, i+1)
		}
	}
	return starts
}
