package json

import (
	"encoding/json"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type criterion struct {
	Attribute string `json:"a"`
	Value     string `json:"v"`
}

type node struct {
	ID         string     `json:"id"`
	ParentID   string     `json:"pId,omitempty"`
	SubtreeIDs []string   `json:"stIds,omitempty"`
	Criterion  *criterion `json:"c,omitempty"`
	Attribute  string     `json:"a"`
	Label      string     `json:"l,omitempty"`
	Unlabeled  bool       `json:"u,omitempty"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes nodes
as JSON objects with the following fields:
* "id": the ID of the node
* "pId": the ID of its parent, omitted for the root
* "stIds": the IDs of its children, omitted for leaves
* "c": the criterion leading to the node as an object with the
  attribute in "a" and the value in "v", omitted for the root
* "a": the attribute the node splits on, or the target attribute for leaves
* "l": the label predicted by a leaf, omitted if it is empty
* "u": true for leaves without label, omitted otherwise
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:        n.ID,
		ParentID:  n.ParentID,
		Attribute: n.Attribute,
		Label:     n.Label,
		Unlabeled: n.Unlabeled,
	}
	if len(n.SubtreeIDs) > 0 {
		jn.SubtreeIDs = n.SubtreeIDs
	}
	if n.Criterion != nil {
		jn.Criterion = &criterion{n.Criterion.Attribute, n.Criterion.Value}
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	if jn.ID == "" {
		return nil, &tree.ModelFormatError{Msg: "node without id"}
	}
	n := &tree.Node{
		ID:        jn.ID,
		ParentID:  jn.ParentID,
		Attribute: jn.Attribute,
		Label:     jn.Label,
		Unlabeled: jn.Unlabeled,
	}
	if len(jn.SubtreeIDs) > 0 {
		n.SubtreeIDs = jn.SubtreeIDs
	}
	if jn.Criterion != nil {
		n.Criterion = feature.NewCriterion(jn.Criterion.Attribute, jn.Criterion.Value)
	}
	return n, nil
}
