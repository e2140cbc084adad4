package ast

import "errors"

// ErrSkipChildren may be returned by an enter callback to skip the
// children of the current node. The walk continues with its siblings.
var ErrSkipChildren = errors.New("skip children")

// ErrStopWalk may be returned by a callback to end the walk early.
// Walk and WalkWithContext return it to the caller unchanged.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root, visiting
// children in the order given by keys. Returning ErrSkipChildren from
// walkFunc skips the current node's subtree; any other non-nil error stops
// the walk and is returned.
func Walk(root *Node, keys VisitorKeys, walkFunc WalkFunc) error {
	return WalkWithContext(root, keys, walkFunc, nil)
}

// WalkContextFunc is the signature of the WalkWithContext enter and leave
// callbacks. It is the same type as WalkFunc, so a Walk callback can be
// reused as either.
type WalkContextFunc = WalkFunc

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil. Leave is not called for a node whose enter
// callback returned ErrSkipChildren.
func WalkWithContext(root *Node, keys VisitorKeys, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	// Enter the current node.
	if enter != nil {
		if err := enter(root); err != nil {
			if errors.Is(err, ErrSkipChildren) {
				return nil
			}
			return err
		}
	}

	// Visit children.
	for _, key := range keys.ChildKeys(root) {
		for _, child := range root.Fields[key] {
			if err := WalkWithContext(child, keys, enter, leave); err != nil {
				return err
			}
		}
	}

	// Leave the current node.
	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// Children returns the non-nil children of n in traversal order.
func Children(n *Node, keys VisitorKeys) []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for _, key := range keys.ChildKeys(n) {
		for _, child := range n.Fields[key] {
			if child != nil {
				children = append(children, child)
			}
		}
	}
	return children
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(root *Node, keys VisitorKeys, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, keys, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, keys VisitorKeys, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // ErrStopWalk is expected and intentionally ignored
	Walk(root, keys, func(node *Node) error {
		if predicate(node) {
			found = node
			return ErrStopWalk
		}
		return nil
	})

	return found
}

// FindByType returns all nodes of the specified types.
func FindByType(root *Node, keys VisitorKeys, types ...string) []*Node {
	return FindAll(root, keys, func(n *Node) bool {
		for _, t := range types {
			if n.Type == t {
				return true
			}
		}
		return false
	})
}
