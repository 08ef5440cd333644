package domain

// NodeKind classifies a node of the virtual scene graph
type NodeKind int

const (
	NodeKindRoot NodeKind = iota
	NodeKindPlain
	NodeKindLink
	// NodeKindLinkedIn is a node reached through a link location
	NodeKindLinkedIn
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindRoot:
		return "root"
	case NodeKindPlain:
		return "plain"
	case NodeKindLink:
		return "link"
	case NodeKindLinkedIn:
		return "linked"
	default:
		return "unknown"
	}
}

// TreeNode is a snapshot of a virtual scene node for navigation
type TreeNode struct {
	Kind       NodeKind
	Name       string
	Path       Path
	LinkHash   string
	Tags       []string
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Walk visits n and every descendant depth first, regardless of expansion
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns the descendant at path, or nil
func (n *TreeNode) Find(p Path) *TreeNode {
	current := n
	for _, name := range p {
		var next *TreeNode
		for _, child := range current.Children {
			if child.Name == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}
