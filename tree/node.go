package tree

import (
	"github.com/pbanos/id3/feature"
)

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree
	ParentID string
	// An slice with the IDs of the nodes directly under this node.
	// Leaf children come first, then the nodes that split further.
	SubtreeIDs []string
	// The constraint this node imposes on samples: the attribute its parent
	// splits on and the value that leads to this node. It is nil for the root.
	Criterion *feature.Criterion
	// The attribute on which the children of this node impose a constraint.
	// For leaves it is the target attribute the tree predicts.
	Attribute string
	// The predicted value of the target attribute for samples reaching
	// this node. Only leaves have one, and it may be the empty string.
	Label string
	// Whether the node is a leaf without label, grown from an empty
	// partition. Such leaves cannot predict.
	Unlabeled bool
}

// IsLeaf returns whether the node has no subtrees.
func (n *Node) IsLeaf() bool {
	return len(n.SubtreeIDs) == 0
}

// ParentAttribute returns the attribute the parent node splits on, or "" for the root.
func (n *Node) ParentAttribute() string {
	if n.Criterion == nil {
		return ""
	}
	return n.Criterion.Attribute
}

// ParentValue returns the value of the parent attribute leading to this node, or "" for the root.
func (n *Node) ParentValue() string {
	if n.Criterion == nil {
		return ""
	}
	return n.Criterion.Value
}
