package scope

import (
	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// Analyze builds the scopes of program. A Program whose sourceType is
// "module" gets a module scope nested in the global scope.
//
// Analysis covers declarations only: var, let, const, functions, classes,
// parameters, catch parameters and imports. References are not resolved.
func Analyze(program *ast.Node, keys ast.VisitorKeys) *Manager {
	manager := NewManager(program)
	if keys == nil {
		keys = ast.DefaultVisitorKeys()
	}

	a := &analyzer{manager: manager, keys: keys}

	current := manager.Global()
	if program.Kind == "module" {
		current = manager.NewScope(sourcecode.ScopeModule, program, current)
	}
	a.visitChildren(program, current)

	return manager
}

type analyzer struct {
	manager *Manager
	keys    ast.VisitorKeys
}

func (a *analyzer) visitChildren(node *ast.Node, scope *Scope) {
	for _, child := range ast.Children(node, a.keys) {
		a.visit(child, scope)
	}
}

func (a *analyzer) visit(node *ast.Node, scope *Scope) {
	if node == nil {
		return
	}

	switch node.Type {
	case ast.TypeFunctionDeclaration:
		if id := node.Child("id"); id != nil {
			scope.Declare(id.Name, node)
		}
		a.visitFunction(node, scope)

	case ast.TypeFunctionExpression, ast.TypeArrowFunctionExpression:
		a.visitFunction(node, scope)

	case ast.TypeClassDeclaration:
		if id := node.Child("id"); id != nil {
			scope.Declare(id.Name, node)
		}
		a.visitClass(node, scope)

	case ast.TypeClassExpression:
		a.visitClass(node, scope)

	case ast.TypeVariableDeclaration:
		a.visitVariableDeclaration(node, scope)

	case ast.TypeBlockStatement:
		a.visitChildren(node, a.manager.NewScope(sourcecode.ScopeBlock, node, scope))

	case ast.TypeStaticBlock:
		a.visitChildren(node, a.manager.NewScope(sourcecode.ScopeClassStaticBlock, node, scope))

	case "CatchClause":
		catch := a.manager.NewScope(sourcecode.ScopeCatch, node, scope)
		for _, name := range patternNames(node.Child("param")) {
			catch.Declare(name, node)
		}
		a.visit(node.Child("body"), catch)

	case "ForStatement", "ForInStatement", "ForOfStatement":
		head := node.Child("init")
		if head == nil {
			head = node.Child("left")
		}
		if isLexicalDeclaration(head) {
			scope = a.manager.NewScope(sourcecode.ScopeFor, node, scope)
		}
		a.visitChildren(node, scope)

	case ast.TypeSwitchStatement:
		a.visit(node.Child("discriminant"), scope)
		inner := a.manager.NewScope(sourcecode.ScopeSwitch, node, scope)
		for _, c := range node.List("cases") {
			a.visit(c, inner)
		}

	case "WithStatement":
		a.visit(node.Child("object"), scope)
		a.visit(node.Child("body"), a.manager.NewScope(sourcecode.ScopeWith, node, scope))

	case "PropertyDefinition":
		a.visit(node.Child("key"), scope)
		if value := node.Child("value"); value != nil {
			a.visit(value, a.manager.NewScope(sourcecode.ScopeClassFieldInitializer, value, scope))
		}

	case "ImportDeclaration":
		for _, spec := range node.List("specifiers") {
			if local := spec.Child("local"); local != nil {
				scope.Declare(local.Name, spec, node)
			}
		}

	default:
		a.visitChildren(node, scope)
	}
}

func (a *analyzer) visitFunction(fn *ast.Node, scope *Scope) {
	if id := fn.Child("id"); id != nil && fn.Type == ast.TypeFunctionExpression {
		scope = a.manager.NewScope(sourcecode.ScopeFunctionExpressionName, fn, scope)
		scope.Declare(id.Name, fn)
	}

	inner := a.manager.NewScope(sourcecode.ScopeFunction, fn, scope)
	for _, param := range fn.List("params") {
		for _, name := range patternNames(param) {
			inner.Declare(name, fn)
		}
		a.visitDefaults(param, inner)
	}

	body := fn.Child("body")
	if body != nil && body.Type == ast.TypeBlockStatement {
		a.visitChildren(body, inner)
		return
	}
	a.visit(body, inner)
}

func (a *analyzer) visitClass(cls *ast.Node, scope *Scope) {
	inner := a.manager.NewScope(sourcecode.ScopeClass, cls, scope)
	if id := cls.Child("id"); id != nil {
		inner.Declare(id.Name, cls)
	}
	a.visit(cls.Child("superClass"), inner)
	a.visitChildren(cls.Child("body"), inner)
}

func (a *analyzer) visitVariableDeclaration(decl *ast.Node, scope *Scope) {
	target := scope
	if decl.Kind == "var" {
		target = scope.variableScope()
	}

	for _, declarator := range decl.List("declarations") {
		if declarator == nil {
			continue
		}
		id := declarator.Child("id")
		for _, name := range patternNames(id) {
			target.Declare(name, declarator, decl)
		}
		a.visitDefaults(id, scope)
		a.visit(declarator.Child("init"), scope)
	}
}

// visitDefaults visits the default value expressions inside a binding
// pattern.
func (a *analyzer) visitDefaults(pattern *ast.Node, scope *Scope) {
	if pattern == nil {
		return
	}
	switch pattern.Type {
	case "AssignmentPattern":
		a.visitDefaults(pattern.Child("left"), scope)
		a.visit(pattern.Child("right"), scope)
	case "ObjectPattern":
		for _, prop := range pattern.List("properties") {
			if prop == nil {
				continue
			}
			if prop.Type == "RestElement" {
				a.visitDefaults(prop.Child("argument"), scope)
				continue
			}
			a.visitDefaults(prop.Child("value"), scope)
		}
	case "ArrayPattern":
		for _, elem := range pattern.List("elements") {
			a.visitDefaults(elem, scope)
		}
	case "RestElement":
		a.visitDefaults(pattern.Child("argument"), scope)
	}
}

// patternNames returns the identifiers bound by a binding pattern.
func patternNames(pattern *ast.Node) []string {
	if pattern == nil {
		return nil
	}

	switch pattern.Type {
	case ast.TypeIdentifier:
		return []string{pattern.Name}
	case "AssignmentPattern":
		return patternNames(pattern.Child("left"))
	case "RestElement":
		return patternNames(pattern.Child("argument"))
	case "ArrayPattern":
		var names []string
		for _, elem := range pattern.List("elements") {
			names = append(names, patternNames(elem)...)
		}
		return names
	case "ObjectPattern":
		var names []string
		for _, prop := range pattern.List("properties") {
			if prop == nil {
				continue
			}
			if prop.Type == "RestElement" {
				names = append(names, patternNames(prop.Child("argument"))...)
				continue
			}
			names = append(names, patternNames(prop.Child("value"))...)
		}
		return names
	default:
		return nil
	}
}

func isLexicalDeclaration(n *ast.Node) bool {
	return n != nil && n.Type == ast.TypeVariableDeclaration && (n.Kind == "let" || n.Kind == "const")
}
