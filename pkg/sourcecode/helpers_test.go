package sourcecode_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/internal/estreetest"
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newSource indexes a fixture whose tree is rooted at root.
func newSource(t *testing.T, f *estreetest.Fixture, root *ast.Node) *sourcecode.SourceCode {
	t.Helper()

	source, err := sourcecode.New(sourcecode.Config{
		Text:   f.Text,
		Tree:   f.Tree(root),
		Logger: quietLogger(),
	})
	require.NoError(t, err)

	return source
}

// statement wraps an expression node in an ExpressionStatement spanning
// snippet.
func statement(f *estreetest.Fixture, snippet string, expr *ast.Node) *ast.Node {
	stmt := f.Node(ast.TypeExpressionStatement, snippet)
	ast.SetChild(stmt, "expression", expr)
	return stmt
}

func values(tokens []*ast.Token) []string {
	result := make([]string, len(tokens))
	for i, tok := range tokens {
		result[i] = tok.Value
	}
	return result
}

// lineLoc is the location of [start, end) on a single-line text.
func lineLoc(start, end int) ast.SourceLocation {
	return ast.SourceLocation{
		Start: ast.Position{Line: 1, Column: start},
		End:   ast.Position{Line: 1, Column: end},
	}
}

func token(tokType ast.TokenType, value string, start, end int) *ast.Token {
	return &ast.Token{
		Type:  tokType,
		Value: value,
		Range: ast.Range{Start: start, End: end},
		Loc:   lineLoc(start, end),
	}
}

// manualTree builds a single-line tree over hand-made tokens.
func manualTree(text string, tokens, comments []*ast.Token) *ast.Tree {
	program := ast.NewProgram()
	ast.SetRange(program, ast.Range{Start: 0, End: len(text)}, lineLoc(0, len(text)))
	ast.SetList(program, "body")
	if tokens == nil {
		tokens = []*ast.Token{}
	}
	if comments == nil {
		comments = []*ast.Token{}
	}
	return &ast.Tree{Root: program, Tokens: tokens, Comments: comments}
}
