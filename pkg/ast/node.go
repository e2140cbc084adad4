package ast

// ESTree node types the indexing layer inspects directly.
const (
	TypeProgram                  = "Program"
	TypeArrayExpression          = "ArrayExpression"
	TypeArrowFunctionExpression  = "ArrowFunctionExpression"
	TypeBlockStatement           = "BlockStatement"
	TypeCallExpression           = "CallExpression"
	TypeClassBody                = "ClassBody"
	TypeClassDeclaration         = "ClassDeclaration"
	TypeClassExpression          = "ClassExpression"
	TypeExportDefaultDeclaration = "ExportDefaultDeclaration"
	TypeExportNamedDeclaration   = "ExportNamedDeclaration"
	TypeExpressionStatement      = "ExpressionStatement"
	TypeFunctionDeclaration      = "FunctionDeclaration"
	TypeFunctionExpression       = "FunctionExpression"
	TypeIdentifier               = "Identifier"
	TypeMethodDefinition         = "MethodDefinition"
	TypeNewExpression            = "NewExpression"
	TypeObjectExpression         = "ObjectExpression"
	TypeProperty                 = "Property"
	TypeStaticBlock              = "StaticBlock"
	TypeSwitchStatement          = "SwitchStatement"
	TypeVariableDeclaration      = "VariableDeclaration"
	TypeVariableDeclarator       = "VariableDeclarator"
)

// Node is a single node of an ESTree-shaped syntax tree.
//
// Children live in Fields keyed by ESTree field name. A single-valued field
// holds a one-element slice; a sequence field holds its elements in order
// and may contain nil holes (e.g. elided array elements).
type Node struct {
	// Type is the ESTree node type, e.g. "FunctionDeclaration".
	Type string

	// Name is the identifier name for Identifier-like nodes.
	Name string

	// Kind is the ESTree "kind" of declarations, methods and properties
	// (e.g. "const", "get"), or the "sourceType" of a Program.
	Kind string

	// Range is the byte range of the node in the source.
	Range Range

	// Loc is the line/column extent of the node.
	Loc SourceLocation

	// Parent is a non-owning back-reference set by AttachParents.
	// It is nil for the root.
	Parent *Node

	// Fields holds the child nodes keyed by field name.
	Fields map[string][]*Node
}

// Tree is a parsed file: its root node plus the token and comment streams.
// A nil Tokens or Comments slice means the parser did not provide it.
type Tree struct {
	Root     *Node
	Tokens   []*Token
	Comments []*Token
}

// Span implements Ranged.
func (n *Node) Span() Range {
	return n.Range
}

// Child returns the first node stored under key, or nil.
func (n *Node) Child(key string) *Node {
	if n == nil {
		return nil
	}
	children := n.Fields[key]
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// List returns the nodes stored under key. Do not mutate the returned slice.
func (n *Node) List(key string) []*Node {
	if n == nil {
		return nil
	}
	return n.Fields[key]
}

// HasChildren returns true if any field holds a non-nil node.
func (n *Node) HasChildren() bool {
	for _, children := range n.Fields {
		for _, child := range children {
			if child != nil {
				return true
			}
		}
	}
	return false
}

// IsRoot returns true if the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsFunction returns true for function-like node types.
func (n *Node) IsFunction() bool {
	switch n.Type {
	case TypeFunctionDeclaration, TypeFunctionExpression, TypeArrowFunctionExpression:
		return true
	default:
		return false
	}
}

// Text returns the source text for this node.
func (n *Node) Text(content string) string {
	if !n.Range.IsValid() || n.Range.End > len(content) {
		return ""
	}
	return content[n.Range.Start:n.Range.End]
}
