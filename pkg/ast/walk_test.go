package ast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/pkg/ast"
)

func buildTestTree() *ast.Node {
	// Build a simple tree:
	// Program
	//   VariableDeclaration
	//     VariableDeclarator
	//       Identifier (id)
	//       FunctionExpression (init)
	//         BlockStatement
	//   ExpressionStatement
	//     CallExpression
	//       Identifier (callee)

	program := ast.NewProgram()

	decl := ast.NewNode(ast.TypeVariableDeclaration)
	declarator := ast.NewNode(ast.TypeVariableDeclarator)
	ast.SetChild(declarator, "id", ast.NewNode(ast.TypeIdentifier))
	fn := ast.NewNode(ast.TypeFunctionExpression)
	ast.SetChild(fn, "body", ast.NewNode(ast.TypeBlockStatement))
	ast.SetChild(declarator, "init", fn)
	ast.AppendChild(decl, "declarations", declarator)

	stmt := ast.NewNode(ast.TypeExpressionStatement)
	call := ast.NewNode(ast.TypeCallExpression)
	ast.SetChild(call, "callee", ast.NewNode(ast.TypeIdentifier))
	ast.SetList(call, "arguments")
	ast.SetChild(stmt, "expression", call)

	ast.SetList(program, "body", decl, stmt)

	return program
}

func TestWalk(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	var visited []string
	err := ast.Walk(program, ast.DefaultVisitorKeys(), func(n *ast.Node) error {
		visited = append(visited, n.Type)
		return nil
	})
	require.NoError(t, err)

	expected := []string{
		ast.TypeProgram,
		ast.TypeVariableDeclaration,
		ast.TypeVariableDeclarator,
		ast.TypeIdentifier,
		ast.TypeFunctionExpression,
		ast.TypeBlockStatement,
		ast.TypeExpressionStatement,
		ast.TypeCallExpression,
		ast.TypeIdentifier,
	}
	assert.Equal(t, expected, visited)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	var visited []string
	err := ast.Walk(program, ast.DefaultVisitorKeys(), func(n *ast.Node) error {
		visited = append(visited, n.Type)
		if n.Type == ast.TypeVariableDeclaration {
			return ast.ErrSkipChildren
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		ast.TypeProgram,
		ast.TypeVariableDeclaration,
		ast.TypeExpressionStatement,
		ast.TypeCallExpression,
		ast.TypeIdentifier,
	}, visited)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	program := buildTestTree()
	errStop := errors.New("stop")

	count := 0
	err := ast.Walk(program, ast.DefaultVisitorKeys(), func(n *ast.Node) error {
		count++
		if n.Type == ast.TypeFunctionExpression {
			return errStop
		}
		return nil
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 5, count)
}

func TestWalkWithContext_EnterLeaveOrder(t *testing.T) {
	t.Parallel()

	call := ast.NewNode(ast.TypeCallExpression)
	ast.SetChild(call, "callee", ast.NewNode(ast.TypeIdentifier))

	var events []string
	err := ast.WalkWithContext(call, ast.DefaultVisitorKeys(),
		func(n *ast.Node) error {
			events = append(events, "enter "+n.Type)
			return nil
		},
		func(n *ast.Node) error {
			events = append(events, "leave "+n.Type)
			return nil
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"enter CallExpression",
		"enter Identifier",
		"leave Identifier",
		"leave CallExpression",
	}, events)
}

func TestWalk_UnknownTypeUsesSortedFields(t *testing.T) {
	t.Parallel()

	custom := ast.NewNode("CustomNode")
	zeta := ast.NewNode("Zeta")
	alpha := ast.NewNode("Alpha")
	ast.SetChild(custom, "zeta", zeta)
	ast.SetChild(custom, "alpha", alpha)

	children := ast.Children(custom, ast.DefaultVisitorKeys())
	require.Len(t, children, 2)
	assert.Same(t, alpha, children[0])
	assert.Same(t, zeta, children[1])
}

func TestWalk_NilHolesSkipped(t *testing.T) {
	t.Parallel()

	array := ast.NewNode(ast.TypeArrayExpression)
	first := ast.NewNode(ast.TypeIdentifier)
	last := ast.NewNode(ast.TypeIdentifier)
	ast.SetList(array, "elements", first, nil, last)

	assert.Equal(t, []*ast.Node{first, last}, ast.Children(array, ast.DefaultVisitorKeys()))
	assert.Len(t, array.List("elements"), 3)
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	idents := ast.FindAll(program, ast.DefaultVisitorKeys(), func(n *ast.Node) bool {
		return n.Type == ast.TypeIdentifier
	})
	assert.Len(t, idents, 2)
}

func TestFindFirst(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	fn := ast.FindFirst(program, ast.DefaultVisitorKeys(), (*ast.Node).IsFunction)
	require.NotNil(t, fn)
	assert.Equal(t, ast.TypeFunctionExpression, fn.Type)

	missing := ast.FindFirst(program, ast.DefaultVisitorKeys(), func(n *ast.Node) bool {
		return n.Type == ast.TypeClassBody
	})
	assert.Nil(t, missing)
}

func TestFindByType(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	found := ast.FindByType(program, ast.DefaultVisitorKeys(),
		ast.TypeBlockStatement, ast.TypeCallExpression)
	require.Len(t, found, 2)
	assert.Equal(t, ast.TypeBlockStatement, found[0].Type)
	assert.Equal(t, ast.TypeCallExpression, found[1].Type)
}

func TestWalkWithContext_AcceptsWalkFunc(t *testing.T) {
	t.Parallel()

	program := buildTestTree()

	count := 0
	var counter ast.WalkFunc = func(*ast.Node) error {
		count++
		return nil
	}

	require.NoError(t, ast.WalkWithContext(program, ast.DefaultVisitorKeys(), counter, counter))
	assert.Equal(t, 18, count, "nine nodes, entered and left")
}
