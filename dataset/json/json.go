/*
Package json encodes datasets as JSON objects holding their columns and
rows, so partitions can travel with the tasks that develop them.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pbanos/id3/dataset"
)

/*
DatasetEncodeDecoder is an interface for objects
that allow encoding datasets into slices of
bytes and decoding them back to datasets.
*/
type DatasetEncodeDecoder interface {

	//Encode receives a *dataset.Dataset
	// and returns a slice of bytes with the dataset
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(context.Context, *dataset.Dataset) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *dataset.Dataset decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode(context.Context, []byte) (*dataset.Dataset, error)
}

type jsonEncodeDecoder struct{}

type jsonDataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New returns a DatasetEncodeDecoder that encodes datasets as JSON objects.
func New() DatasetEncodeDecoder {
	return jsonEncodeDecoder{}
}

func (jsonEncodeDecoder) Encode(ctx context.Context, ds *dataset.Dataset) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := ds.Rows()
	if rows == nil {
		rows = [][]string{}
	}
	return json.Marshal(&jsonDataset{Columns: ds.Columns(), Rows: rows})
}

func (jsonEncodeDecoder) Decode(ctx context.Context, data []byte) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	jds := &jsonDataset{}
	err := json.Unmarshal(data, jds)
	if err != nil {
		return nil, fmt.Errorf("decoding dataset from json: %v", err)
	}
	ds, err := dataset.New(jds.Columns, jds.Rows)
	if err != nil {
		return nil, fmt.Errorf("decoding dataset from json: %w", err)
	}
	return ds, nil
}
