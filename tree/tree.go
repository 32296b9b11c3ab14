/*
Package tree provides the decision tree grown by ID3: its nodes, the stores
that hold them and the walk that predicts the target attribute of a sample.
*/
package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

// Tree represents a decision tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree and the name of the target
// attribute it is able to predict.
type Tree struct {
	NodeStore
	RootID string
	Label  string
}

// New takes the ID for the root Node, a NodeStore and the name of the
// target attribute and returns a tree composed of the nodes in the NodeStore
// connected to the node with the given root ID.
func New(rootID string, nodeStore NodeStore, label string) *Tree {
	return &Tree{nodeStore, rootID, label}
}

/*
Predict takes a sample and returns the label the tree predicts for it.

Starting at the root, on every node that splits on an attribute it reads the
sample's value for that attribute and continues on the child whose criterion
that value satisfies. On reaching a leaf it returns its label. If no child
matches, the sample has no value for the attribute or the leaf has no label
an *UnresolvedPredictionError is returned.
*/
func (t *Tree) Predict(ctx context.Context, s feature.Sample) (string, error) {
	if t == nil {
		return "", ErrNilTree
	}
	n, err := t.getNode(ctx, t.RootID)
	if err != nil {
		return "", fmt.Errorf("predicting sample: %v", err)
	}
	for !n.IsLeaf() {
		v, err := s.ValueFor(n.Attribute)
		if err != nil {
			return "", &UnresolvedPredictionError{NodeID: n.ID, Attribute: n.Attribute, Cause: err}
		}
		var selectedNode *Node
		for _, nID := range n.SubtreeIDs {
			subnode, err := t.getNode(ctx, nID)
			if err != nil {
				return "", fmt.Errorf("predicting sample: %v", err)
			}
			if subnode.Criterion != nil && subnode.Criterion.Value == v {
				selectedNode = subnode
				break
			}
		}
		if selectedNode == nil {
			return "", &UnresolvedPredictionError{NodeID: n.ID, Attribute: n.Attribute, Value: v}
		}
		n = selectedNode
	}
	if n.Unlabeled {
		return "", &UnresolvedPredictionError{NodeID: n.ID, Attribute: n.Attribute, Leaf: true}
	}
	return n.Label, nil
}

/*
Test takes a context.Context and a dataset holding the target attribute and
returns three values:
 * the prediction success rate of the tree over the given dataset
 * the number of rows for which no prediction could be made
 * an error if a prediction failed for reasons other than the tree not
   being able to resolve it. If this is not nil, the other values will be 0.0 and 0
   respectively
*/
func (t *Tree) Test(ctx context.Context, s *dataset.Dataset) (float64, int, error) {
	if t == nil {
		return 0.0, 0, nil
	}
	if !s.HasColumn(t.Label) {
		return 0.0, 0, &dataset.AttributeNotFoundError{Attribute: t.Label}
	}
	var result float64
	var errCount int
	for _, sample := range s.Samples() {
		p, err := t.Predict(ctx, sample)
		if err != nil {
			if !errors.Is(err, ErrUnresolvedPrediction) {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		v, err := sample.ValueFor(t.Label)
		if err != nil {
			return 0.0, 0, err
		}
		if p == v {
			result += 1.0
		}
	}
	if s.Count() == 0 {
		return 0.0, 0, nil
	}
	return result / float64(s.Count()), errCount, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.getNode(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	for _, snID := range n.SubtreeIDs {
		sn, err := t.getNode(ctx, snID)
		if err != nil {
			return err
		}
		err = t.traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

/*
AttributeValues returns, for every attribute some node of the tree splits on,
the values that lead to its children, in the order they are first found
walking the tree from the root.
*/
func (t *Tree) AttributeValues(ctx context.Context) (map[string][]string, error) {
	values := make(map[string][]string)
	seen := make(map[feature.Criterion]bool)
	err := t.Traverse(ctx, false, func(ctx context.Context, n *Node) error {
		if n.Criterion == nil || seen[*n.Criterion] {
			return nil
		}
		seen[*n.Criterion] = true
		values[n.Criterion.Attribute] = append(values[n.Criterion.Attribute], n.Criterion.Value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Children returns the nodes directly under the given one, in order.
func (t *Tree) Children(ctx context.Context, n *Node) ([]*Node, error) {
	children := make([]*Node, 0, len(n.SubtreeIDs))
	for _, id := range n.SubtreeIDs {
		c, err := t.getNode(ctx, id)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

// Root returns the root node of the tree.
func (t *Tree) Root(ctx context.Context) (*Node, error) {
	return t.getNode(ctx, t.RootID)
}

func (t *Tree) getNode(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %v: %v", id, err)
	}
	if n == nil {
		return nil, fmt.Errorf("node %v not found", id)
	}
	return n, nil
}

func (t *Tree) String() string {
	return t.subtreeString(t.RootID)
}

func (t *Tree) subtreeString(nodeID string) string {
	n, err := t.NodeStore.Get(context.TODO(), nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	if n == nil {
		return fmt.Sprintf("ERROR: node %s not found\n", nodeID)
	}
	result := fmt.Sprintf("[%s]\n", nodeID)
	if n.Criterion != nil {
		result = fmt.Sprintf("%s{ %v }\n", result, n.Criterion)
	}
	if n.IsLeaf() {
		if n.Unlabeled {
			result = fmt.Sprintf("%s{ %s unknown }\n", result, n.Attribute)
		} else {
			result = fmt.Sprintf("%s{ %s is %s }\n", result, n.Attribute, n.Label)
		}
	} else {
		result = fmt.Sprintf("%s{ split on %s }\n", result, n.Attribute)
	}
	if len(n.SubtreeIDs) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	} else {
		result = fmt.Sprintf("%s \n", result)
	}
	for i, subtreeID := range n.SubtreeIDs {
		for j, line := range strings.Split(t.subtreeString(subtreeID), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(n.SubtreeIDs)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
