package sourcecode

import (
	"fmt"
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// ScopeType names the kind of a lexical scope.
type ScopeType string

// Scope types produced by scope analysis.
const (
	ScopeGlobal                 ScopeType = "global"
	ScopeModule                 ScopeType = "module"
	ScopeFunction               ScopeType = "function"
	ScopeFunctionExpressionName ScopeType = "function-expression-name"
	ScopeBlock                  ScopeType = "block"
	ScopeClass                  ScopeType = "class"
	ScopeCatch                  ScopeType = "catch"
	ScopeWith                   ScopeType = "with"
	ScopeFor                    ScopeType = "for"
	ScopeSwitch                 ScopeType = "switch"
	ScopeClassFieldInitializer  ScopeType = "class-field-initializer"
	ScopeClassStaticBlock       ScopeType = "class-static-block"
)

// ScopeManager is the scope analysis a SourceCode resolves scopes against.
type ScopeManager interface {
	// Acquire returns the scope anchored at node, or nil. With several
	// scopes on one node, inner selects the innermost instead of the
	// outermost.
	Acquire(node *ast.Node, inner bool) Scope

	// GlobalScope returns the outermost scope.
	GlobalScope() Scope

	// DeclaredVariables returns the variables declared by node.
	DeclaredVariables(node *ast.Node) []Variable
}

// Scope is a single lexical scope.
type Scope interface {
	Type() ScopeType
	Block() *ast.Node
	ChildScopes() []Scope
}

// Variable is a binding declared in a scope.
type Variable interface {
	Name() string
}

// ScopeOf returns the innermost scope containing node. The scope created for
// the name of a named function expression is never returned; the function's
// own scope is returned instead. Results are memoized per node.
func (s *SourceCode) ScopeOf(node *ast.Node) (Scope, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing required argument: node", ErrInvalidArgument)
	}
	if s.scopeManager == nil {
		return nil, ErrNoScopeManager
	}

	if scope, ok := s.scopeCache.load(node); ok {
		return scope, nil
	}

	return s.scopeCache.store(node, s.resolveScope(node)), nil
}

func (s *SourceCode) resolveScope(node *ast.Node) Scope {
	inner := node != s.root

	for current := node; current != nil; current = current.Parent {
		scope := s.scopeManager.Acquire(current, inner)
		if scope == nil {
			continue
		}
		if scope.Type() == ScopeFunctionExpressionName {
			if children := scope.ChildScopes(); len(children) > 0 {
				return children[0]
			}
		}
		return scope
	}

	return s.scopeManager.GlobalScope()
}

// DeclaredVariables returns the variables declared by node.
func (s *SourceCode) DeclaredVariables(node *ast.Node) ([]Variable, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing required argument: node", ErrInvalidArgument)
	}
	if s.scopeManager == nil {
		return nil, ErrNoScopeManager
	}
	return s.scopeManager.DeclaredVariables(node), nil
}

// AncestorsOf returns the ancestors of node from the root down to its parent.
func (s *SourceCode) AncestorsOf(node *ast.Node) ([]*ast.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing required argument: node", ErrInvalidArgument)
	}

	var ancestors []*ast.Node
	for parent := node.Parent; parent != nil; parent = parent.Parent {
		ancestors = append(ancestors, parent)
	}
	slices.Reverse(ancestors)

	return ancestors, nil
}
