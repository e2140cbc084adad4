package sourcecode

import (
	"strings"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// DocCommentFor returns the /** ... */ comment documenting node, or nil.
//
// Only function and class nodes have doc comments. A declaration wrapped in
// an export is documented by the comment before the export. A function
// expression is documented by the comment before the nearest enclosing
// statement, variable or member that owns it.
func (s *SourceCode) DocCommentFor(node *ast.Node) *ast.Token {
	if node == nil {
		return nil
	}

	switch node.Type {
	case ast.TypeFunctionDeclaration, ast.TypeClassDeclaration:
		if isExportWrapper(node.Parent) {
			return s.findPreceding(node.Parent)
		}
		return s.findPreceding(node)

	case ast.TypeClassExpression:
		if node.Parent == nil || node.Parent.Parent == nil {
			return nil
		}
		return s.findPreceding(node.Parent.Parent)

	case ast.TypeFunctionExpression, ast.TypeArrowFunctionExpression:
		if !isCallSite(node.Parent) {
			if anchor := s.docAnchor(node); anchor != nil {
				return s.findPreceding(anchor)
			}
		}
		return s.findPreceding(node)

	default:
		return nil
	}
}

// findPreceding returns the doc comment immediately before n, provided it
// ends on the line before n starts or on the same line.
func (s *SourceCode) findPreceding(n *ast.Node) *ast.Token {
	entry := s.entryBefore(n.Range.Start)
	if entry == nil || !isDocComment(entry) {
		return nil
	}
	if n.Loc.Start.Line-entry.Loc.End.Line > 1 {
		return nil
	}
	return entry
}

// docAnchor walks up from a function expression to the first ancestor that
// may carry its doc comment. It returns nil when the comment should be
// looked for at the function itself.
func (s *SourceCode) docAnchor(node *ast.Node) *ast.Node {
	for anchor := node.Parent; anchor != nil && !anchor.IsRoot(); anchor = anchor.Parent {
		if !s.hasCommentBefore(anchor) && !isFunctionLike(anchor) && !definesMember(anchor) {
			continue
		}
		if anchor.Type == ast.TypeFunctionDeclaration {
			return nil
		}
		return anchor
	}
	return nil
}

func (s *SourceCode) hasCommentBefore(n *ast.Node) bool {
	entry := s.entryBefore(n.Range.Start)
	return entry != nil && entry.IsComment()
}

func isDocComment(tok *ast.Token) bool {
	return tok.Type == ast.TokBlock && strings.HasPrefix(tok.Value, "*")
}

func isExportWrapper(n *ast.Node) bool {
	return n != nil &&
		(n.Type == ast.TypeExportNamedDeclaration || n.Type == ast.TypeExportDefaultDeclaration)
}

func isCallSite(n *ast.Node) bool {
	return n != nil && (n.Type == ast.TypeCallExpression || n.Type == ast.TypeNewExpression)
}

func isFunctionLike(n *ast.Node) bool {
	return strings.Contains(n.Type, "Function")
}

func definesMember(n *ast.Node) bool {
	return n.Type == ast.TypeMethodDefinition || n.Type == ast.TypeProperty
}
