// Package scope models lexical scopes and variable bindings of a JavaScript
// program and implements sourcecode.ScopeManager over them.
package scope

import (
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// Scope is one lexical scope anchored at a block node.
type Scope struct {
	kind      sourcecode.ScopeType
	block     *ast.Node
	upper     *Scope
	children  []*Scope
	variables []*Variable
	manager   *Manager
}

// Type implements sourcecode.Scope.
func (s *Scope) Type() sourcecode.ScopeType {
	return s.kind
}

// Block implements sourcecode.Scope.
func (s *Scope) Block() *ast.Node {
	return s.block
}

// ChildScopes implements sourcecode.Scope.
func (s *Scope) ChildScopes() []sourcecode.Scope {
	children := make([]sourcecode.Scope, len(s.children))
	for i, child := range s.children {
		children[i] = child
	}
	return children
}

// Upper returns the enclosing scope, or nil for the global scope.
func (s *Scope) Upper() *Scope {
	return s.upper
}

// Variables returns the variables declared directly in this scope.
func (s *Scope) Variables() []*Variable {
	return slices.Clone(s.variables)
}

// Variable returns the variable named name declared in this scope, or nil.
func (s *Scope) Variable(name string) *Variable {
	for _, v := range s.variables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Resolve looks name up in this scope and its enclosing scopes.
func (s *Scope) Resolve(name string) *Variable {
	for current := s; current != nil; current = current.upper {
		if v := current.Variable(name); v != nil {
			return v
		}
	}
	return nil
}

// Declare binds name in this scope. Each def node records a declaration of
// the variable; declaring the same name again adds to its definitions.
func (s *Scope) Declare(name string, defs ...*ast.Node) *Variable {
	v := s.Variable(name)
	if v == nil {
		v = &Variable{name: name, scope: s}
		s.variables = append(s.variables, v)
	}
	for _, def := range defs {
		if def == nil || slices.Contains(v.defs, def) {
			continue
		}
		v.defs = append(v.defs, def)
		s.manager.recordDeclaration(def, v)
	}
	return v
}

// isVariableScope reports whether var declarations hoist to this scope.
func (s *Scope) isVariableScope() bool {
	switch s.kind {
	case sourcecode.ScopeGlobal, sourcecode.ScopeModule, sourcecode.ScopeFunction,
		sourcecode.ScopeClassFieldInitializer, sourcecode.ScopeClassStaticBlock:
		return true
	default:
		return false
	}
}

// variableScope returns the nearest scope that var declarations hoist to.
func (s *Scope) variableScope() *Scope {
	current := s
	for !current.isVariableScope() && current.upper != nil {
		current = current.upper
	}
	return current
}

// Variable is a named binding.
type Variable struct {
	name  string
	scope *Scope
	defs  []*ast.Node
}

// Name implements sourcecode.Variable.
func (v *Variable) Name() string {
	return v.name
}

// Scope returns the scope the variable is declared in.
func (v *Variable) Scope() *Scope {
	return v.scope
}

// Defs returns the nodes declaring the variable.
func (v *Variable) Defs() []*ast.Node {
	return slices.Clone(v.defs)
}
