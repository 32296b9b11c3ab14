package queue

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree. A task is self-contained: it
// carries everything needed to develop its node
// and shares no state with other tasks.
type Task struct {
	// The node to be developed
	Node *tree.Node
	// The dataset of training data with the rows
	// satisfying the criteria on the node
	// and its ancestors.
	Dataset *dataset.Dataset
	// The attributes that cannot be used to
	// split the node: the target attribute and
	// the attributes split on by its ancestors.
	ExcludedAttributes []string
}

// ID returns a string that identifies the
// task, the ID of its Node.
func (t *Task) ID() string {
	return t.Node.ID
}

// IsRoot returns whether the task develops the root of a tree.
func (t *Task) IsRoot() bool {
	return t.Node.Criterion == nil
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s}", t.Node.ID)
}
