/*
Package json encodes the tasks of a queue as JSON objects so they can be
kept outside the process that grows the tree.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"

	djson "github.com/pbanos/id3/dataset/json"
	"github.com/pbanos/id3/queue"
	tjson "github.com/pbanos/id3/tree/json"
)

/*
TaskEncodeDecoder is an interface for objects
that allow encoding tasks as slices of bytes and decoding
them back to tasks. It is used to serialize tasks into a
representation to store on redis.
*/
type TaskEncodeDecoder interface {

	//Encode receives a *queue.Task
	// and returns a slice of bytes with the task encoded or an
	//error if the encoding could not be performed for
	//some reason. Its counterpart is Decode.
	Encode(context.Context, *queue.Task) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *queue.Task decoded from the slice of bytes
	//or an error if the decoding could not be performed
	//for some reason.
	Decode(context.Context, []byte) (*queue.Task, error)
}

type jsonEncodeDecoder struct {
	ned tjson.NodeEncodeDecoder
	ded djson.DatasetEncodeDecoder
}

type jsonTask struct {
	Node               json.RawMessage `json:"n"`
	ExcludedAttributes []string        `json:"ex"`
	Dataset            json.RawMessage `json:"ds"`
}

/*
New takes a NodeEncodeDecoder and a DatasetEncodeDecoder and returns a
TaskEncodeDecoder that encodes tasks as JSON objects with the node under
"n", the excluded attributes under "ex" and the dataset under "ds".
*/
func New(ned tjson.NodeEncodeDecoder, ded djson.DatasetEncodeDecoder) TaskEncodeDecoder {
	return &jsonEncodeDecoder{ned, ded}
}

func (jed *jsonEncodeDecoder) Encode(ctx context.Context, t *queue.Task) ([]byte, error) {
	n, err := jed.ned.Encode(t.Node)
	if err != nil {
		return nil, fmt.Errorf("encoding task %s as json: %v", t.ID(), err)
	}
	ds, err := jed.ded.Encode(ctx, t.Dataset)
	if err != nil {
		return nil, fmt.Errorf("encoding task %s as json: %v", t.ID(), err)
	}
	return json.Marshal(&jsonTask{Node: n, ExcludedAttributes: t.ExcludedAttributes, Dataset: ds})
}

func (jed *jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*queue.Task, error) {
	jt := &jsonTask{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, fmt.Errorf("decoding task from json: %v", err)
	}
	if len(jt.Node) == 0 || len(jt.Dataset) == 0 {
		return nil, fmt.Errorf("decoding task from json: missing node or dataset")
	}
	t := &queue.Task{ExcludedAttributes: jt.ExcludedAttributes}
	t.Node, err = jed.ned.Decode(jt.Node)
	if err != nil {
		return nil, fmt.Errorf("decoding json task: decoding task node: %v", err)
	}
	t.Dataset, err = jed.ded.Decode(ctx, jt.Dataset)
	if err != nil {
		return nil, fmt.Errorf("decoding json task: decoding task dataset: %v", err)
	}
	return t, nil
}
