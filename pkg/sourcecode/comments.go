package sourcecode

import (
	"slices"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// Comments holds the comments attached to a node.
type Comments struct {
	// Leading are the comments directly before the node, in source order.
	Leading []*ast.Token `json:"leading"`

	// Trailing are the comments directly after the node, in source order.
	// For an empty block-like node they start with the comments inside it.
	Trailing []*ast.Token `json:"trailing"`
}

// CommentsFor returns the comments attached to node. Results are memoized
// per node. A nil node has no comments.
func (s *SourceCode) CommentsFor(node *ast.Node) Comments {
	if node == nil {
		return Comments{Leading: []*ast.Token{}, Trailing: []*ast.Token{}}
	}

	comments := s.commentCache.loadOrCompute(node, func() Comments {
		return s.attachComments(node)
	})

	return Comments{
		Leading:  slices.Clone(comments.Leading),
		Trailing: slices.Clone(comments.Trailing),
	}
}

func (s *SourceCode) attachComments(node *ast.Node) Comments {
	comments := Comments{Leading: []*ast.Token{}, Trailing: []*ast.Token{}}

	if node.Type == ast.TypeProgram {
		if len(node.List("body")) == 0 {
			comments.Leading = slices.Clone(s.comments)
		}
		return comments
	}

	if isEmptyContainer(node) {
		comments.Trailing = append(comments.Trailing, s.CommentsInside(node)...)
	}

	parent := node.Parent
	bounded := parent != nil && !parent.IsRoot()

	for idx := s.lastEndingAt(node.Range.Start); idx >= 0; idx-- {
		entry := s.tokensAndComments[idx]
		if !entry.IsComment() || (bounded && entry.Range.Start < parent.Range.Start) {
			break
		}
		comments.Leading = append(comments.Leading, entry)
	}
	slices.Reverse(comments.Leading)

	for idx := s.firstStartingAt(node.Range.End); idx < len(s.tokensAndComments); idx++ {
		entry := s.tokensAndComments[idx]
		if !entry.IsComment() || (bounded && entry.Range.End > parent.Range.End) {
			break
		}
		comments.Trailing = append(comments.Trailing, entry)
	}

	return comments
}

// isEmptyContainer reports whether node is a block-like node with nothing
// in it, so that any comments inside it belong to the node itself.
func isEmptyContainer(node *ast.Node) bool {
	switch node.Type {
	case ast.TypeBlockStatement, ast.TypeClassBody, ast.TypeStaticBlock:
		return len(node.List("body")) == 0
	case ast.TypeObjectExpression:
		return len(node.List("properties")) == 0
	case ast.TypeArrayExpression:
		return len(node.List("elements")) == 0
	case ast.TypeSwitchStatement:
		return len(node.List("cases")) == 0
	default:
		return false
	}
}
