/*
Package yaml encodes trees as nested YAML documents:

	label: Play
	root:
	  attribute: Outlook
	  children:
	  - criterion:
	      attribute: Outlook
	      value: Overcast
	    attribute: Play
	    label: "Yes"
	  - ...

Node IDs are not persisted: decoding creates new nodes on the given store.
*/
package yaml

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	yaml "gopkg.in/yaml.v2"
)

type document struct {
	Label string `yaml:"label"`
	Root  *node  `yaml:"root"`
}

type criterion struct {
	Attribute string `yaml:"attribute"`
	Value     string `yaml:"value"`
}

type node struct {
	Criterion *criterion `yaml:"criterion,omitempty"`
	Attribute string     `yaml:"attribute"`
	Label     string     `yaml:"label,omitempty"`
	Unlabeled bool       `yaml:"unlabeled,omitempty"`
	Children  []*node    `yaml:"children,omitempty"`
}

/*
WriteYAMLTree takes a context.Context, a tree and an io.Writer and writes
the tree onto the io.Writer as a YAML document. An error is returned if the
nodes of the tree cannot be retrieved or the document cannot be written.
*/
func WriteYAMLTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	root, err := t.Root(ctx)
	if err != nil {
		return err
	}
	yr, err := encodeNode(ctx, t, root)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(&document{Label: t.Label, Root: yr})
	if err != nil {
		return fmt.Errorf("marshalling yml tree: %v", err)
	}
	_, err = w.Write(data)
	return err
}

func encodeNode(ctx context.Context, t *tree.Tree, n *tree.Node) (*node, error) {
	yn := &node{Attribute: n.Attribute, Label: n.Label, Unlabeled: n.Unlabeled}
	if n.Criterion != nil {
		yn.Criterion = &criterion{n.Criterion.Attribute, n.Criterion.Value}
	}
	children, err := t.Children(ctx, n)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		yc, err := encodeNode(ctx, t, c)
		if err != nil {
			return nil, err
		}
		yn.Children = append(yn.Children, yc)
	}
	return yn, nil
}

/*
ReadYAMLTree takes a context.Context, an io.Reader and a NodeStore and
decodes a YAML document written by WriteYAMLTree, creating its nodes on the
NodeStore. It returns the decoded tree, a *tree.ModelFormatError if the
document does not describe a tree or the error returned by the NodeStore.
*/
func ReadYAMLTree(ctx context.Context, r io.Reader, ns tree.NodeStore) (*tree.Tree, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := &document{}
	err = yaml.Unmarshal(data, doc)
	if err != nil {
		return nil, &tree.ModelFormatError{Msg: fmt.Sprintf("parsing yml tree: %v", err)}
	}
	if doc.Label == "" {
		return nil, &tree.ModelFormatError{Msg: "no label attribute defined"}
	}
	if doc.Root == nil {
		return nil, &tree.ModelFormatError{Msg: "no root node defined"}
	}
	if doc.Root.Criterion != nil {
		return nil, &tree.ModelFormatError{Msg: "root node cannot have a criterion"}
	}
	root, err := decodeNode(ctx, ns, doc.Root, "")
	if err != nil {
		return nil, err
	}
	return tree.New(root.ID, ns, doc.Label), nil
}

func decodeNode(ctx context.Context, ns tree.NodeStore, yn *node, parentID string) (*tree.Node, error) {
	if yn.Attribute == "" {
		return nil, &tree.ModelFormatError{Msg: "node without attribute"}
	}
	n := &tree.Node{ParentID: parentID, Attribute: yn.Attribute, Label: yn.Label, Unlabeled: yn.Unlabeled}
	if yn.Criterion != nil {
		n.Criterion = feature.NewCriterion(yn.Criterion.Attribute, yn.Criterion.Value)
	}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	for _, yc := range yn.Children {
		if yc == nil || yc.Criterion == nil || yc.Criterion.Attribute != yn.Attribute {
			return nil, &tree.ModelFormatError{Msg: fmt.Sprintf("child of node on %s without a criterion on it", yn.Attribute)}
		}
		c, err := decodeNode(ctx, ns, yc, n.ID)
		if err != nil {
			return nil, err
		}
		n.SubtreeIDs = append(n.SubtreeIDs, c.ID)
	}
	if len(n.SubtreeIDs) > 0 {
		err = ns.Store(ctx, n)
	}
	return n, err
}
