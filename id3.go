/*
Package id3 grows decision trees from categorical datasets with the ID3
algorithm: every node splits its rows on the attribute with the highest
information gain on the target attribute, values whose rows share a single
label become leaves and the rest are developed as new nodes.

Nodes are developed one at a time from a FIFO queue of tasks, each carrying
its own dataset partition and the attributes already split on along its path.
*/
package id3

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/entropy"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/queue"
	"github.com/pbanos/id3/tree"
	"github.com/sirupsen/logrus"
)

// State is the stage of the growth of a tree.
type State int

const (
	// RootSelection is the state while the root of the tree is developed
	RootSelection State = iota
	// Partitioning is the state after a node has been split into its children
	Partitioning
	// Recursing is the state while a node below the root is developed
	Recursing
	// Done is the state once no node is left to develop
	Done
)

func (s State) String() string {
	switch s {
	case RootSelection:
		return "root-selection"
	case Partitioning:
		return "partitioning"
	case Recursing:
		return "recursing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Seed takes a context, a dataset, a queue and a node store and
// sets everything up so that consuming the queue afterwards grows
// a tree that predicts the last column of the dataset from the
// other ones.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue.
func Seed(ctx context.Context, s *dataset.Dataset, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	if s == nil || len(s.Columns()) == 0 {
		return nil, fmt.Errorf("seeding tree: dataset has no columns")
	}
	n := &tree.Node{}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("seeding tree: creating root node: %v", err)
	}
	label := s.Target()
	task := &queue.Task{Node: n, Dataset: s, ExcludedAttributes: []string{label}}
	t := tree.New(n.ID, ns, label)
	err = q.Push(ctx, task)
	if err != nil {
		ns.Delete(ctx, n)
		return nil, fmt.Errorf("seeding tree: pushing root task: %v", err)
	}
	return t, nil
}

// BranchOut takes a context, a task, a tree and a trace and
// develops the node in the task using the task's dataset and
// excluded attributes to predict the tree's label. It records
// the round on the trace and returns a set of tasks to develop
// the resulting children nodes that still need splitting, or an
// error.
//
// A node whose dataset is empty is left as a leaf without label.
// A node for which no attribute yields a positive information
// gain becomes a leaf predicting the most frequent label of its
// dataset. Any other node splits on the best attribute: values
// whose rows share a single label become leaf children and every
// other value becomes a child to be developed by a returned task.
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, tr *Trace) (tasks []*queue.Task, e error) {
	n := task.Node
	defer func() {
		err := t.NodeStore.Store(ctx, n)
		if e == nil && err != nil {
			e = fmt.Errorf("storing node %s: %v", n.ID, err)
		}
	}()
	if !task.IsRoot() {
		tr.Branch(n.Criterion)
	}
	tr.Snapshot(task.Dataset)
	n.Attribute = t.Label
	if task.Dataset.Count() == 0 {
		n.Unlabeled = true
		tr.Exhausted()
		return nil, nil
	}
	best, gains, err := ChooseBestAttribute(task.Dataset, t.Label, task.ExcludedAttributes)
	if err != nil {
		return nil, fmt.Errorf("choosing attribute for node %s: %w", n.ID, err)
	}
	tr.Gains(gains, best)
	if best == "" {
		labels, err := task.Dataset.ColumnValues(t.Label)
		if err != nil {
			return nil, err
		}
		n.Label = entropy.ValueCounts(labels).Majority()
		tr.NoAttribute(n.Label)
		return nil, nil
	}
	p, err := NewPartition(task.Dataset, best, t.Label)
	if err != nil {
		return nil, fmt.Errorf("partitioning node %s on %s: %w", n.ID, best, err)
	}
	n.Attribute = best
	values, labels := p.Leaves()
	tr.Leaves(best, values, labels)
	for i, v := range values {
		leaf := &tree.Node{
			ParentID:  n.ID,
			Criterion: feature.NewCriterion(best, v),
			Attribute: t.Label,
			Label:     labels[i],
		}
		err = t.NodeStore.Create(ctx, leaf)
		if err != nil {
			return nil, fmt.Errorf("creating leaf for %v: %v", leaf.Criterion, err)
		}
		n.SubtreeIDs = append(n.SubtreeIDs, leaf.ID)
	}
	excluded := make([]string, 0, len(task.ExcludedAttributes)+1)
	excluded = append(append(excluded, task.ExcludedAttributes...), best)
	for _, v := range p.Branches() {
		sub, err := task.Dataset.FilterRows(best, v)
		if err != nil {
			return nil, fmt.Errorf("partitioning node %s on %s: %w", n.ID, best, err)
		}
		child := &tree.Node{
			ParentID:  n.ID,
			Criterion: feature.NewCriterion(best, v),
		}
		err = t.NodeStore.Create(ctx, child)
		if err != nil {
			return nil, fmt.Errorf("creating node for %v: %v", child.Criterion, err)
		}
		n.SubtreeIDs = append(n.SubtreeIDs, child.ID)
		tasks = append(tasks, &queue.Task{Node: child, Dataset: sub, ExcludedAttributes: excluded})
	}
	return tasks, nil
}

// Work takes a context, a tree, a queue and a trace and enters
// a loop in which it:
//   * pulls a task from the queue,
//   * branches its node out into new subnodes using BranchOut
//   * pushes the tasks for the new subnodes into the queue
//
// When no task can be pulled from the queue the tree is fully
// grown and Work returns nil.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, tr *Trace) error {
	g := &Grower{NodeStore: t.NodeStore, Queue: q, Trace: tr}
	return g.work(ctx, t)
}

/*
Grower grows trees from datasets, keeping track of the state of the
growth. The zero value grows trees in memory, writing no trace and no
logs.
*/
type Grower struct {
	// NodeStore holds the nodes of grown trees. Defaults to a memory node store.
	NodeStore tree.NodeStore
	// Queue holds the tasks pending. Defaults to a memory queue.
	Queue queue.Queue
	// Trace records the rounds of the growth. Nil discards them.
	Trace *Trace
	// Logger receives debug information on every round. Nil discards it.
	Logger logrus.FieldLogger

	state  State
	rounds int
}

// State returns the state of the last growth.
func (g *Grower) State() State {
	return g.state
}

// Rounds returns the number of nodes developed on the last growth.
func (g *Grower) Rounds() int {
	return g.rounds
}

/*
Grow takes a context and a dataset and returns a tree grown from it to
predict the last column of the dataset from the other ones, or an error.

The trace is opened with "begin" and is only closed with "finish" if the
tree was completely grown.
*/
func (g *Grower) Grow(ctx context.Context, s *dataset.Dataset) (*tree.Tree, error) {
	if g.NodeStore == nil {
		g.NodeStore = tree.NewMemoryNodeStore()
	}
	if g.Queue == nil {
		g.Queue = queue.New()
	}
	g.state = RootSelection
	g.rounds = 0
	if err := g.Trace.Begin(); err != nil {
		return nil, fmt.Errorf("writing trace: %v", err)
	}
	t, err := Seed(ctx, s, g.Queue, g.NodeStore)
	if err != nil {
		return nil, err
	}
	g.logger().WithFields(logrus.Fields{"rows": s.Count(), "label": t.Label}).Debug("Tree seeded")
	err = g.work(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := g.Trace.Finish(); err != nil {
		return nil, fmt.Errorf("writing trace: %v", err)
	}
	return t, nil
}

func (g *Grower) work(ctx context.Context, t *tree.Tree) error {
	log := g.logger()
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}
		task, err := g.Queue.Pull(ctx)
		if err != nil {
			return fmt.Errorf("pulling task: %v", err)
		}
		if task == nil {
			g.state = Done
			log.WithField("rounds", g.rounds).Debug("Tree grown")
			return nil
		}
		if !task.IsRoot() {
			g.state = Recursing
		}
		g.rounds++
		tasks, err := BranchOut(ctx, task, t, g.Trace)
		if err != nil {
			return err
		}
		if err = g.Trace.Err(); err != nil {
			return fmt.Errorf("writing trace: %v", err)
		}
		g.state = Partitioning
		log.WithFields(logrus.Fields{
			"node":      task.Node.ID,
			"attribute": task.Node.Attribute,
			"rows":      task.Dataset.Count(),
			"branches":  len(tasks),
		}).Debug("Node developed")
		for _, st := range tasks {
			err = g.Queue.Push(ctx, st)
			if err != nil {
				return fmt.Errorf("pushing task: %v", err)
			}
		}
	}
}

func (g *Grower) logger() logrus.FieldLogger {
	if g.Logger != nil {
		return g.Logger
	}
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

// Grow takes a context and a dataset and grows a tree in memory with
// a zero Grower, writing the trace onto the given trace.
func Grow(ctx context.Context, s *dataset.Dataset, tr *Trace) (*tree.Tree, error) {
	g := &Grower{Trace: tr}
	return g.Grow(ctx, s)
}
