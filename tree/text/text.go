/*
Package text implements the line-oriented model format of decision trees.

A model is a sequence of records of five lines each, written in pre-order:

	node
	<attribute the node splits on>
	<attribute its parent splits on, or None for the root>
	<value of the parent attribute leading to the node, or None for the root>
	<children literal>

The children literal is a JSON array holding the leading leaf children of
the node, each as an object keyed by the target attribute:

	[{"Play":{"parent":"Outlook","valueOfParent":"Overcast","value":"Yes"}}]

Every child after the first one that splits further is written as its own
record following its parent's. Leaves in that position, and a root that is
itself a leaf, are written as leaf records:

	leaf
	<target attribute>
	<attribute its parent splits on, or None for the root>
	<value of the parent attribute leading to the leaf, or None for the root>
	<label, or None if the leaf cannot predict>

Attributes, values and labels are written as they are unless they are empty,
equal to None, start with a double quote or hold line breaks. Those are
written as JSON string literals, so a bare None always means absent. Leaf
children without label have a null value in the children literal.

Attributes never repeat along a path from the root, so the parent of a
record is the deepest node on the path to the previous record that splits
on the record's parent attribute.
*/
package text

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

const (
	none       = "None"
	nodeMarker = "node"
	leafMarker = "leaf"
)

type leafEntry struct {
	Parent        string  `json:"parent"`
	ValueOfParent string  `json:"valueOfParent"`
	Value         *string `json:"value"`
}

/*
Write takes a context, a tree and an io.Writer and writes the tree onto the
io.Writer in the model format. It returns an error if the nodes of the tree
cannot be retrieved or the model cannot be written.
*/
func Write(ctx context.Context, t *tree.Tree, w io.Writer) error {
	bw := bufio.NewWriter(w)
	root, err := t.Root(ctx)
	if err != nil {
		return fmt.Errorf("writing model: %v", err)
	}
	err = writeSubtree(ctx, t, root, bw)
	if err != nil {
		return err
	}
	return bw.Flush()
}

func writeSubtree(ctx context.Context, t *tree.Tree, n *tree.Node, w *bufio.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	parent, value := none, none
	if n.Criterion != nil {
		parent, value = encodeField(n.Criterion.Attribute), encodeField(n.Criterion.Value)
	}
	if n.IsLeaf() {
		label := none
		if !n.Unlabeled {
			label = encodeField(n.Label)
		}
		return writeRecord(w, leafMarker, encodeField(n.Attribute), parent, value, label)
	}
	children, err := t.Children(ctx, n)
	if err != nil {
		return fmt.Errorf("writing model: %v", err)
	}
	leaves := []map[string]*leafEntry{}
	var i int
	for ; i < len(children) && children[i].IsLeaf(); i++ {
		leaves = append(leaves, map[string]*leafEntry{
			children[i].Attribute: {
				Parent:        n.Attribute,
				ValueOfParent: children[i].ParentValue(),
				Value:         labelOf(children[i]),
			},
		})
	}
	literal, err := json.Marshal(leaves)
	if err != nil {
		return fmt.Errorf("writing model: encoding children of %s: %v", n.Attribute, err)
	}
	err = writeRecord(w, nodeMarker, encodeField(n.Attribute), parent, value, string(literal))
	if err != nil {
		return err
	}
	for _, c := range children[i:] {
		err = writeSubtree(ctx, t, c, w)
		if err != nil {
			return err
		}
	}
	return nil
}

func labelOf(n *tree.Node) *string {
	if n.Unlabeled {
		return nil
	}
	l := n.Label
	return &l
}

// encodeField returns s as it is, or as a JSON string literal if it could
// be mistaken for None, a quoted field or more than one line.
func encodeField(s string) string {
	if s == "" || s == none || strings.HasPrefix(s, `"`) || strings.ContainsAny(s, "\r\n") {
		quoted, _ := json.Marshal(s)
		return string(quoted)
	}
	return s
}

// decodeField reverses encodeField, reporting false for a bare None.
func decodeField(line string) (string, bool, error) {
	if line == none {
		return "", false, nil
	}
	if !strings.HasPrefix(line, `"`) {
		return line, true, nil
	}
	var s string
	if err := json.Unmarshal([]byte(line), &s); err != nil {
		return "", false, err
	}
	return s, true, nil
}

func writeRecord(w *bufio.Writer, lines ...string) error {
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}

type reader struct {
	scanner *bufio.Scanner
	line    int
}

func (r *reader) next() (string, bool, error) {
	if !r.scanner.Scan() {
		return "", false, r.scanner.Err()
	}
	r.line++
	return strings.TrimSuffix(r.scanner.Text(), "\r"), true, nil
}

func (r *reader) fail(format string, args ...interface{}) error {
	return &tree.ModelFormatError{Line: r.line, Msg: fmt.Sprintf(format, args...)}
}

/*
Read takes a context, an io.Reader and a NodeStore and decodes a model
from the io.Reader, creating its nodes on the NodeStore. It returns the
decoded tree, a *tree.ModelFormatError pointing at the offending line if
the model is malformed, or the error returned by the NodeStore.
*/
func Read(ctx context.Context, rd io.Reader, ns tree.NodeStore) (*tree.Tree, error) {
	r := &reader{scanner: bufio.NewScanner(rd)}
	r.scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var t *tree.Tree
	var path []*tree.Node
	for {
		marker, ok, err := r.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if marker == "" {
			continue
		}
		if marker != nodeMarker && marker != leafMarker {
			return nil, r.fail("expected %q or %q, found %q", nodeMarker, leafMarker, marker)
		}
		fields := make([]string, 4)
		for i := range fields {
			fields[i], ok, err = r.next()
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, r.fail("incomplete %s record", marker)
			}
		}
		var decoded [3]string
		var present [3]bool
		for i := range decoded {
			decoded[i], present[i], err = decodeField(fields[i])
			if err != nil {
				return nil, r.fail("decoding %q: %v", fields[i], err)
			}
		}
		attribute, parent, value := decoded[0], decoded[1], decoded[2]
		if !present[0] {
			return nil, r.fail("record without attribute")
		}
		if present[1] != present[2] {
			return nil, r.fail("parent and valueOfParent must be both None or both set")
		}
		n := &tree.Node{Attribute: attribute}
		var p *tree.Node
		if t == nil {
			if present[1] {
				return nil, r.fail("first record must be the root")
			}
		} else {
			if !present[1] {
				return nil, r.fail("second root found")
			}
			for len(path) > 0 && path[len(path)-1].Attribute != parent {
				path = path[:len(path)-1]
			}
			if len(path) == 0 {
				return nil, r.fail("no node on %s found for parent of %s", parent, attribute)
			}
			p = path[len(path)-1]
			n.Criterion = feature.NewCriterion(parent, value)
			n.ParentID = p.ID
		}
		var leaves []map[string]*leafEntry
		if marker == leafMarker {
			var labeled bool
			n.Label, labeled, err = decodeField(fields[3])
			if err != nil {
				return nil, r.fail("decoding label %q: %v", fields[3], err)
			}
			n.Unlabeled = !labeled
		} else {
			err = json.Unmarshal([]byte(fields[3]), &leaves)
			if err != nil {
				return nil, r.fail("decoding children: %v", err)
			}
		}
		if err = ns.Create(ctx, n); err != nil {
			return nil, err
		}
		if t == nil {
			label := ""
			if marker == leafMarker {
				label = attribute
			}
			t = tree.New(n.ID, ns, label)
		}
		if marker == leafMarker {
			if err = setLabel(t, attribute); err != nil {
				return nil, r.fail("%v", err)
			}
		}
		for _, entry := range leaves {
			if len(entry) != 1 {
				return nil, r.fail("child must have exactly one target attribute")
			}
			for target, le := range entry {
				if le == nil || le.Parent != attribute {
					return nil, r.fail("child of %s has a different parent", attribute)
				}
				if err = setLabel(t, target); err != nil {
					return nil, r.fail("%v", err)
				}
				leaf := &tree.Node{
					ParentID:  n.ID,
					Criterion: feature.NewCriterion(attribute, le.ValueOfParent),
					Attribute: target,
				}
				if le.Value != nil {
					leaf.Label = *le.Value
				} else {
					leaf.Unlabeled = true
				}
				if err = ns.Create(ctx, leaf); err != nil {
					return nil, err
				}
				n.SubtreeIDs = append(n.SubtreeIDs, leaf.ID)
			}
		}
		if marker == nodeMarker {
			if err = ns.Store(ctx, n); err != nil {
				return nil, err
			}
			path = append(path, n)
		}
		if p != nil {
			p.SubtreeIDs = append(p.SubtreeIDs, n.ID)
			if err = ns.Store(ctx, p); err != nil {
				return nil, err
			}
		}
	}
	if t == nil {
		return nil, r.fail("empty model")
	}
	if t.Label == "" {
		return nil, r.fail("no leaf defines the target attribute")
	}
	return t, nil
}

func setLabel(t *tree.Tree, target string) error {
	if t.Label == "" {
		t.Label = target
		return nil
	}
	if t.Label != target {
		return fmt.Errorf("leaves predict both %s and %s", t.Label, target)
	}
	return nil
}
