package sourcecode

import "github.com/yaklabco/srcindex/pkg/ast"

// NodeAt returns the deepest node whose range contains offset, or nil if
// offset lies outside the program.
func (s *SourceCode) NodeAt(offset int) *ast.Node {
	var result *ast.Node

	enter := func(n *ast.Node) error {
		if !n.Range.Contains(offset) {
			return ast.ErrSkipChildren
		}
		result = n
		return nil
	}
	leave := func(n *ast.Node) error {
		if n == result {
			return ast.ErrStopWalk
		}
		return nil
	}

	// The only error the callbacks produce is the stop signal.
	_ = ast.WalkWithContext(s.root, s.visitorKeys, enter, leave)

	return result
}
