package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/pkg/ast"
)

func TestUTF16Index_ByteOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		unit    int
		want    int
		wantErr bool
	}{
		{name: "ascii", text: "abc", unit: 2, want: 2},
		{name: "after two-byte character", text: "é;", unit: 1, want: 2},
		{name: "after three-byte character", text: "日x", unit: 1, want: 3},
		{name: "after surrogate pair", text: "😀;", unit: 2, want: 4},
		{name: "end of text", text: "é", unit: 1, want: 2},
		{name: "inside surrogate pair", text: "😀;", unit: 1, wantErr: true},
		{name: "past end", text: "é", unit: 2, wantErr: true},
		{name: "negative", text: "é", unit: -1, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ast.NewUTF16Index(testCase.text).ByteOffset(testCase.unit)
			if testCase.wantErr {
				require.ErrorIs(t, err, ast.ErrUTF16Offset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestUTF16Index_BytePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		pos     ast.Position
		want    ast.Position
		wantErr bool
	}{
		{name: "first line", text: "éx", pos: ast.Position{Line: 1, Column: 1}, want: ast.Position{Line: 1, Column: 2}},
		{name: "after CRLF", text: "é\r\nüx", pos: ast.Position{Line: 2, Column: 1}, want: ast.Position{Line: 2, Column: 2}},
		{name: "after lone CR", text: "a\rüx", pos: ast.Position{Line: 2, Column: 1}, want: ast.Position{Line: 2, Column: 2}},
		{name: "after line separator", text: "a\u2028éx", pos: ast.Position{Line: 2, Column: 1}, want: ast.Position{Line: 2, Column: 2}},
		{name: "line past end", text: "é", pos: ast.Position{Line: 2, Column: 0}, wantErr: true},
		{name: "line zero", text: "é", pos: ast.Position{Line: 0, Column: 0}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ast.NewUTF16Index(testCase.text).BytePosition(testCase.pos)
			if testCase.wantErr {
				require.ErrorIs(t, err, ast.ErrUTF16Offset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestUTF16Index_Identity(t *testing.T) {
	t.Parallel()

	assert.True(t, ast.NewUTF16Index("").Identity())
	assert.True(t, ast.NewUTF16Index("let x = 1;\r\n").Identity())
	assert.False(t, ast.NewUTF16Index("'é'").Identity())
}

func loc(startLine, startCol, endLine, endCol int) ast.SourceLocation {
	return ast.SourceLocation{
		Start: ast.Position{Line: startLine, Column: startCol},
		End:   ast.Position{Line: endLine, Column: endCol},
	}
}

func TestTree_ToByteOffsets(t *testing.T) {
	t.Parallel()

	// "/*é*/x;\n" as a parser reports it: é is one code unit and two bytes.
	text := "/*é*/x;\n"

	comment := &ast.Token{Type: ast.TokBlock, Value: "é", Range: ast.Range{Start: 0, End: 5}, Loc: loc(1, 0, 1, 5)}
	ident := &ast.Token{Type: ast.TokIdentifier, Value: "x", Range: ast.Range{Start: 5, End: 6}, Loc: loc(1, 5, 1, 6)}
	semi := &ast.Token{Type: ast.TokPunctuator, Value: ";", Range: ast.Range{Start: 6, End: 7}, Loc: loc(1, 6, 1, 7)}
	unset := &ast.Token{Type: ast.TokPunctuator, Value: "?", Range: ast.NoRange}

	program := ast.NewProgram()
	ast.SetRange(program, ast.Range{Start: 0, End: 8}, loc(1, 0, 2, 0))
	stmt := ast.NewNode(ast.TypeExpressionStatement)
	ast.SetRange(stmt, ast.Range{Start: 5, End: 7}, loc(1, 5, 1, 7))
	id := ast.NewNode(ast.TypeIdentifier)
	ast.SetRange(id, ast.Range{Start: 5, End: 6}, loc(1, 5, 1, 6))
	ast.SetChild(stmt, "expression", id)
	ast.SetList(program, "body", stmt)

	tree := &ast.Tree{Root: program, Tokens: []*ast.Token{ident, semi, unset}, Comments: []*ast.Token{comment}}
	require.NoError(t, tree.ToByteOffsets(text))

	assert.Equal(t, ast.Range{Start: 0, End: 6}, comment.Range)
	assert.Equal(t, "/*é*/", text[comment.Range.Start:comment.Range.End])
	assert.Equal(t, loc(1, 0, 1, 6), comment.Loc)

	assert.Equal(t, ast.Range{Start: 6, End: 7}, ident.Range)
	assert.Equal(t, "x", text[ident.Range.Start:ident.Range.End])
	assert.Equal(t, loc(1, 6, 1, 7), ident.Loc)
	assert.Equal(t, ast.Range{Start: 7, End: 8}, semi.Range)
	assert.Equal(t, ast.NoRange, unset.Range)

	assert.Equal(t, ast.Range{Start: 0, End: 9}, program.Range)
	assert.Equal(t, loc(1, 0, 2, 0), program.Loc)
	assert.Equal(t, ast.Range{Start: 6, End: 8}, stmt.Range)
	assert.Equal(t, ast.Range{Start: 6, End: 7}, id.Range)
}

func TestTree_ToByteOffsets_ASCIIUnchanged(t *testing.T) {
	t.Parallel()

	tok := &ast.Token{Type: ast.TokIdentifier, Value: "x", Range: ast.Range{Start: 0, End: 1}, Loc: loc(1, 0, 1, 1)}
	program := ast.NewProgram()
	ast.SetRange(program, ast.Range{Start: 0, End: 1}, loc(1, 0, 1, 1))

	tree := &ast.Tree{Root: program, Tokens: []*ast.Token{tok}, Comments: []*ast.Token{}}
	require.NoError(t, tree.ToByteOffsets("x"))
	assert.Equal(t, ast.Range{Start: 0, End: 1}, tok.Range)
}

func TestTree_ToByteOffsets_SplitSurrogate(t *testing.T) {
	t.Parallel()

	tok := &ast.Token{Type: ast.TokString, Value: "😀", Range: ast.Range{Start: 1, End: 2}, Loc: loc(1, 1, 1, 2)}
	program := ast.NewProgram()
	ast.SetRange(program, ast.Range{Start: 0, End: 4}, loc(1, 0, 1, 4))

	tree := &ast.Tree{Root: program, Tokens: []*ast.Token{tok}, Comments: []*ast.Token{}}
	require.ErrorIs(t, tree.ToByteOffsets("'😀'"), ast.ErrUTF16Offset)
}
