package scope

import (
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
	"github.com/yaklabco/srcindex/pkg/sourcecode"
)

// Manager owns every scope of one program.
type Manager struct {
	scopes   []*Scope
	byNode   map[*ast.Node][]*Scope
	declared map[*ast.Node][]*Variable
}

// NewManager creates a Manager whose global scope is anchored at program.
func NewManager(program *ast.Node) *Manager {
	m := &Manager{
		byNode:   make(map[*ast.Node][]*Scope),
		declared: make(map[*ast.Node][]*Variable),
	}
	m.NewScope(sourcecode.ScopeGlobal, program, nil)
	return m
}

// NewScope creates a scope of the given type anchored at block and nested
// in upper. A nil upper nests it in the global scope.
func (m *Manager) NewScope(kind sourcecode.ScopeType, block *ast.Node, upper *Scope) *Scope {
	if upper == nil && len(m.scopes) > 0 {
		upper = m.scopes[0]
	}

	scope := &Scope{
		kind:    kind,
		block:   block,
		upper:   upper,
		manager: m,
	}
	if upper != nil {
		upper.children = append(upper.children, scope)
	}

	m.scopes = append(m.scopes, scope)
	m.byNode[block] = append(m.byNode[block], scope)

	return scope
}

// Scopes returns every scope in creation order. The first is the global
// scope.
func (m *Manager) Scopes() []*Scope {
	return slices.Clone(m.scopes)
}

// Global returns the global scope.
func (m *Manager) Global() *Scope {
	return m.scopes[0]
}

// GlobalScope implements sourcecode.ScopeManager.
func (m *Manager) GlobalScope() sourcecode.Scope {
	return m.Global()
}

// Acquire implements sourcecode.ScopeManager. When node anchors several
// scopes, inner picks the innermost and otherwise the outermost; the scope
// holding a function expression's own name is passed over in that case.
func (m *Manager) Acquire(node *ast.Node, inner bool) sourcecode.Scope {
	if scope := m.acquire(node, inner); scope != nil {
		return scope
	}
	return nil
}

func (m *Manager) acquire(node *ast.Node, inner bool) *Scope {
	scopes := m.byNode[node]
	switch len(scopes) {
	case 0:
		return nil
	case 1:
		return scopes[0]
	}

	candidates := slices.Clone(scopes)
	if inner {
		slices.Reverse(candidates)
	}
	for _, scope := range candidates {
		if scope.kind != sourcecode.ScopeFunctionExpressionName {
			return scope
		}
	}
	return nil
}

// DeclaredVariables implements sourcecode.ScopeManager.
func (m *Manager) DeclaredVariables(node *ast.Node) []sourcecode.Variable {
	declared := m.declared[node]
	variables := make([]sourcecode.Variable, len(declared))
	for i, v := range declared {
		variables[i] = v
	}
	return variables
}

func (m *Manager) recordDeclaration(def *ast.Node, v *Variable) {
	if !slices.Contains(m.declared[def], v) {
		m.declared[def] = append(m.declared[def], v)
	}
}
