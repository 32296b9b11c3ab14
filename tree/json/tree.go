/*
Package json encodes trees and their nodes as JSON. The node encoding is
shared by the node stores that keep nodes as opaque values.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/tree"
)

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
a NodeEncodeDecoder and an io.Writer and serializes the given tree
as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "rootID": a string with the ID of the node at the root of the tree
* "label": a string with the name of the attribute the tree predicts
* "nodes": an array containing the nodes that can be traversed on the tree
  serialized by the given NodeEncodeDecoder, parents before children.
An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, w io.Writer) error {
	err := marshalJSONTreeHeader(t, w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		err := writeNode(i, n, ned, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "]}\n")
	return err
}

/*
ReadJSONTree takes a context.Context, a pointer to a tree.Tree, a
NodeEncodeDecoder and an io.Reader and unmarshals the contents of the
io.Reader onto the given tree, storing its nodes on the tree's NodeStore.
The contents are expected to be in the format written by WriteJSONTree.
An error is returned if the JSON cannot be read from the io.Reader, a
*tree.ModelFormatError if it does not describe a tree, or the error
returned by the NodeStore if a node cannot be stored.
*/
func ReadJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, r io.Reader) error {
	dec := json.NewDecoder(r)
	jt := &struct {
		RootID string             `json:"rootID"`
		Label  string             `json:"label"`
		Nodes  []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return &tree.ModelFormatError{Msg: err.Error()}
	}
	if jt.Label == "" {
		return &tree.ModelFormatError{Msg: "no label attribute defined"}
	}
	if jt.RootID == "" {
		return &tree.ModelFormatError{Msg: "no root node id available"}
	}
	var rootFound bool
	for i, jn := range jt.Nodes {
		if jn == nil {
			return &tree.ModelFormatError{Msg: fmt.Sprintf("node %d is null", i)}
		}
		n, err := ned.Decode(*jn)
		if err != nil {
			return &tree.ModelFormatError{Msg: fmt.Sprintf("node %d: %v", i, err)}
		}
		rootFound = rootFound || n.ID == jt.RootID
		err = t.NodeStore.Store(ctx, n)
		if err != nil {
			return err
		}
	}
	if !rootFound {
		return &tree.ModelFormatError{Msg: fmt.Sprintf("root node %s not found", jt.RootID)}
	}
	t.Label = jt.Label
	t.RootID = jt.RootID
	return nil
}

func marshalJSONTreeHeader(t *tree.Tree, w io.Writer) error {
	jrootID, err := json.Marshal(t.RootID)
	if err != nil {
		return err
	}
	jLabel, err := json.Marshal(t.Label)
	if err != nil {
		return err
	}
	header := fmt.Sprintf(`{"rootID":%s,"label":%s,"nodes":[`, jrootID, jLabel)
	_, err = io.WriteString(w, header)
	return err
}

func writeNode(i int, n *tree.Node, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := io.WriteString(w, ",")
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(n)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}
