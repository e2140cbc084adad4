package ast

// NewNode creates a new node of the given type with an unset range.
func NewNode(nodeType string) *Node {
	return &Node{
		Type:  nodeType,
		Range: NoRange,
	}
}

// NewProgram creates a new Program root node.
func NewProgram() *Node {
	return NewNode(TypeProgram)
}

// SetChild stores child as the single value of field key.
// A nil child records the field as present but empty.
func SetChild(parent *Node, key string, child *Node) {
	if parent == nil {
		return
	}
	if parent.Fields == nil {
		parent.Fields = make(map[string][]*Node)
	}
	if child == nil {
		parent.Fields[key] = nil
		return
	}
	child.Parent = parent
	parent.Fields[key] = []*Node{child}
}

// SetList stores children as the sequence value of field key.
// The slice is stored as-is; nil entries are kept as holes.
func SetList(parent *Node, key string, children ...*Node) {
	if parent == nil {
		return
	}
	if parent.Fields == nil {
		parent.Fields = make(map[string][]*Node)
	}
	if children == nil {
		children = []*Node{}
	}
	for _, child := range children {
		if child != nil {
			child.Parent = parent
		}
	}
	parent.Fields[key] = children
}

// AppendChild appends child to the sequence stored under key.
func AppendChild(parent *Node, key string, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if parent.Fields == nil {
		parent.Fields = make(map[string][]*Node)
	}
	child.Parent = parent
	parent.Fields[key] = append(parent.Fields[key], child)
}

// SetRange sets the byte range and line/column extent of a node.
func SetRange(n *Node, r Range, loc SourceLocation) {
	if n == nil {
		return
	}
	n.Range = r
	n.Loc = loc
}

// AttachParents sets the Parent link of every node reachable from root
// through any field. The root's parent is cleared.
func AttachParents(root *Node) {
	if root == nil {
		return
	}
	root.Parent = nil
	attachParents(root)
}

func attachParents(node *Node) {
	for _, children := range node.Fields {
		for _, child := range children {
			if child == nil {
				continue
			}
			child.Parent = node
			attachParents(child)
		}
	}
}
