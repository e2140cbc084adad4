package scope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/srcindex/internal/estreetest"
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/scope"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

func names(variables []*scope.Variable) []string {
	result := make([]string, len(variables))
	for i, v := range variables {
		result[i] = v.Name()
	}
	return result
}

func declaration(f *estreetest.Fixture, kind, snippet string, ids ...*ast.Node) *ast.Node {
	decl := f.Node(ast.TypeVariableDeclaration, snippet)
	decl.Kind = kind
	declarators := make([]*ast.Node, len(ids))
	for i, id := range ids {
		declarators[i] = f.NodeRange(ast.TypeVariableDeclarator, id.Range)
		ast.SetChild(declarators[i], "id", id)
	}
	ast.SetList(decl, "declarations", declarators...)
	return decl
}

func TestAnalyze_VarHoistsLetDoesNot(t *testing.T) {
	t.Parallel()

	// function f(p) { { var v; let l; } }
	f := estreetest.New("function f(p) { { var v; let l; } }")
	inner := f.Node(ast.TypeBlockStatement, "{ var v; let l; }")
	ast.SetList(inner, "body",
		declaration(f, "var", "var v;", f.Ident("v", 1)),
		declaration(f, "let", "let l;", f.Ident("l", 1)),
	)
	body := f.Node(ast.TypeBlockStatement, "{ { var v; let l; } }")
	ast.SetList(body, "body", inner)
	fn := f.Node(ast.TypeFunctionDeclaration, "function f(p) { { var v; let l; } }")
	ast.SetChild(fn, "id", f.Ident("f", 1))
	ast.SetList(fn, "params", f.Ident("p", 0))
	ast.SetChild(fn, "body", body)
	program := f.Program(fn)
	ast.AttachParents(program)

	manager := scope.Analyze(program, nil)
	scopes := manager.Scopes()
	require.Len(t, scopes, 3)

	global, fnScope, block := scopes[0], scopes[1], scopes[2]
	assert.Equal(t, []string{"f"}, names(global.Variables()))
	assert.Equal(t, sourcecode.ScopeFunction, fnScope.Type())
	assert.Equal(t, []string{"p", "v"}, names(fnScope.Variables()))
	assert.Equal(t, sourcecode.ScopeBlock, block.Type())
	assert.Same(t, inner, block.Block())
	assert.Equal(t, []string{"l"}, names(block.Variables()))
}

func TestAnalyze_Module(t *testing.T) {
	t.Parallel()

	f := estreetest.New("import a from 'a'; const b = 1;")
	spec := f.Node("ImportDefaultSpecifier", "a")
	ast.SetChild(spec, "local", f.Ident("a", 0))
	imp := f.Node("ImportDeclaration", "import a from 'a';")
	ast.SetList(imp, "specifiers", spec)
	decl := declaration(f, "const", "const b = 1;", f.Ident("b", 0))
	program := f.Program(imp, decl)
	program.Kind = "module"
	ast.AttachParents(program)

	manager := scope.Analyze(program, nil)
	scopes := manager.Scopes()
	require.Len(t, scopes, 2)

	module := scopes[1]
	assert.Equal(t, sourcecode.ScopeModule, module.Type())
	assert.Equal(t, []string{"a", "b"}, names(module.Variables()))
	assert.Empty(t, manager.Global().Variables())

	declared := manager.DeclaredVariables(imp)
	require.Len(t, declared, 1)
	assert.Equal(t, "a", declared[0].Name())
}

func TestAnalyze_NamedFunctionExpression(t *testing.T) {
	t.Parallel()

	f := estreetest.New("(function g(x) {});")
	fn := f.Node(ast.TypeFunctionExpression, "function g(x) {}")
	ast.SetChild(fn, "id", f.Ident("g", 0))
	ast.SetList(fn, "params", f.Ident("x", 0))
	body := f.Node(ast.TypeBlockStatement, "{}")
	ast.SetList(body, "body")
	ast.SetChild(fn, "body", body)
	stmt := f.Node(ast.TypeExpressionStatement, "(function g(x) {});")
	ast.SetChild(stmt, "expression", fn)
	program := f.Program(stmt)
	ast.AttachParents(program)

	manager := scope.Analyze(program, nil)
	scopes := manager.Scopes()
	require.Len(t, scopes, 3)

	nameScope, fnScope := scopes[1], scopes[2]
	assert.Equal(t, sourcecode.ScopeFunctionExpressionName, nameScope.Type())
	assert.Equal(t, []string{"g"}, names(nameScope.Variables()))
	assert.Same(t, nameScope, fnScope.Upper())
	assert.Equal(t, []string{"x"}, names(fnScope.Variables()))
	assert.Same(t, fnScope, manager.Acquire(fn, true).(*scope.Scope))
}

func TestAnalyze_CatchClassAndLoops(t *testing.T) {
	t.Parallel()

	f := estreetest.New("try {} catch (err) {} for (let i of xs) {} class K {}")
	tryBlock := f.Node(ast.TypeBlockStatement, "{}")
	ast.SetList(tryBlock, "body")
	catchBody := f.NodeNth(ast.TypeBlockStatement, "{}", 1)
	ast.SetList(catchBody, "body")
	handler := f.Node("CatchClause", "catch (err) {}")
	ast.SetChild(handler, "param", f.Ident("err", 0))
	ast.SetChild(handler, "body", catchBody)
	tryStmt := f.Node("TryStatement", "try {} catch (err) {}")
	ast.SetChild(tryStmt, "block", tryBlock)
	ast.SetChild(tryStmt, "handler", handler)

	loopBody := f.NodeNth(ast.TypeBlockStatement, "{}", 2)
	ast.SetList(loopBody, "body")
	loop := f.Node("ForOfStatement", "for (let i of xs) {}")
	ast.SetChild(loop, "left", declaration(f, "let", "let i", f.Ident("i", 0)))
	ast.SetChild(loop, "right", f.Ident("xs", 0))
	ast.SetChild(loop, "body", loopBody)

	classBody := f.NodeNth(ast.TypeClassBody, "{}", 3)
	ast.SetList(classBody, "body")
	class := f.Node(ast.TypeClassDeclaration, "class K {}")
	ast.SetChild(class, "id", f.Ident("K", 0))
	ast.SetChild(class, "body", classBody)

	program := f.Program(tryStmt, loop, class)
	ast.AttachParents(program)

	manager := scope.Analyze(program, nil)

	types := make([]sourcecode.ScopeType, 0)
	for _, s := range manager.Scopes() {
		types = append(types, s.Type())
	}
	assert.Equal(t, []sourcecode.ScopeType{
		sourcecode.ScopeGlobal,
		sourcecode.ScopeBlock,
		sourcecode.ScopeCatch,
		sourcecode.ScopeBlock,
		sourcecode.ScopeFor,
		sourcecode.ScopeBlock,
		sourcecode.ScopeClass,
	}, types)

	catch := manager.Acquire(handler, true).(*scope.Scope)
	assert.Equal(t, []string{"err"}, names(catch.Variables()))

	forScope := manager.Acquire(loop, true).(*scope.Scope)
	assert.Equal(t, []string{"i"}, names(forScope.Variables()))

	assert.Equal(t, []string{"K"}, names(manager.Global().Variables()))
	classScope := manager.Acquire(class, true).(*scope.Scope)
	assert.Equal(t, []string{"K"}, names(classScope.Variables()))
}

func TestAnalyze_DestructuringPatterns(t *testing.T) {
	t.Parallel()

	f := estreetest.New("const { a, b: [c, ...d], ...e } = obj;")
	prop := func(key, value *ast.Node) *ast.Node {
		p := f.NodeRange(ast.TypeProperty, ast.Range{Start: key.Range.Start, End: value.Range.End})
		ast.SetChild(p, "key", key)
		ast.SetChild(p, "value", value)
		return p
	}

	rest := f.Node("RestElement", "...d")
	ast.SetChild(rest, "argument", f.Ident("d", 0))
	array := f.Node("ArrayPattern", "[c, ...d]")
	ast.SetList(array, "elements", f.Ident("c", 1), rest)
	objectRest := f.Node("RestElement", "...e")
	ast.SetChild(objectRest, "argument", f.Ident("e", 0))
	pattern := f.Node("ObjectPattern", "{ a, b: [c, ...d], ...e }")
	ast.SetList(pattern, "properties",
		prop(f.Ident("a", 0), f.Ident("a", 0)),
		prop(f.Ident("b", 0), array),
		objectRest,
	)

	declarator := f.Node(ast.TypeVariableDeclarator, "{ a, b: [c, ...d], ...e } = obj")
	ast.SetChild(declarator, "id", pattern)
	ast.SetChild(declarator, "init", f.Ident("obj", 0))
	decl := f.Node(ast.TypeVariableDeclaration, "const { a, b: [c, ...d], ...e } = obj;")
	decl.Kind = "const"
	ast.SetList(decl, "declarations", declarator)
	program := f.Program(decl)
	ast.AttachParents(program)

	manager := scope.Analyze(program, nil)

	assert.Equal(t, []string{"a", "c", "d", "e"}, names(manager.Global().Variables()))
	assert.Len(t, manager.DeclaredVariables(declarator), 4)
}
