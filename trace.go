package id3

import (
	"io"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
Trace writes the training log: a human-readable, append-only record of
every round of the growth of a tree. For the same dataset the trace is
always the same, byte for byte.

A trace begins with a "begin" line and ends with "finish". Each round
records the branch it develops (for any round but the first), the rows
of its dataset, the information gain of every selectable attribute, the
selected attribute and the leaves found.

Writing errors are sticky: after the first one nothing else is
written and Err returns it. A nil *Trace discards everything.
*/
type Trace struct {
	w   io.Writer
	err error
}

// NewTrace returns a Trace writing onto the given io.Writer.
func NewTrace(w io.Writer) *Trace {
	return &Trace{w: w}
}

// Err returns the first error found writing the trace.
func (tr *Trace) Err() error {
	if tr == nil {
		return nil
	}
	return tr.err
}

func (tr *Trace) write(parts ...string) {
	if tr == nil || tr.err != nil {
		return
	}
	for _, p := range parts {
		if _, err := io.WriteString(tr.w, p); err != nil {
			tr.err = err
			return
		}
	}
}

// Begin writes the opening line of the trace.
func (tr *Trace) Begin() error {
	tr.write("begin\n")
	return tr.Err()
}

// Finish writes the closing line of the trace, signalling a complete training.
func (tr *Trace) Finish() error {
	tr.write("finish")
	return tr.Err()
}

// Branch writes the criterion leading to the node developed on a round.
func (tr *Trace) Branch(c *feature.Criterion) {
	tr.write("\n", c.Attribute, ":", c.Value, "\n")
}

// Snapshot writes the header and rows of the dataset of a round.
func (tr *Trace) Snapshot(s *dataset.Dataset) {
	tr.write(strings.Join(s.Lines(), "\n"), "\n")
}

// Gains writes the information gain of every selectable attribute and the selected one.
func (tr *Trace) Gains(g Gains, best string) {
	tr.write(
		"Information Gain\n",
		strings.Join(g.Names(), ","), "\n",
		strings.Join(g.Formatted(), ","), "\n",
		"best attribute,", best, "\n",
	)
}

// Leaves writes the values of the attribute that lead to leaves, with their labels.
func (tr *Trace) Leaves(attribute string, values, labels []string) {
	if len(values) == 0 {
		tr.write("non-leaf node found\n")
		return
	}
	tr.write("leaf node found\n")
	for i, v := range values {
		tr.write(attribute, ":", v, ",", labels[i], "\n")
	}
}

// NoAttribute writes that no attribute could split a round and the label its node predicts.
func (tr *Trace) NoAttribute(label string) {
	tr.write("no attribute selected,", label, "\n")
}

// Exhausted writes that the dataset of a round is empty.
func (tr *Trace) Exhausted() {
	tr.write("empty partition\n")
}
