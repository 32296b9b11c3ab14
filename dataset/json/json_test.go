package json

import (
	"context"
	"errors"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	ctx := context.Background()
	ded := New()
	ds, err := dataset.New([]string{"Outlook", "Play"}, [][]string{{"Sunny", "No"}, {"Rain", "Yes"}})
	require.NoError(t, err)

	data, err := ded.Encode(ctx, ds)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["Outlook","Play"],"rows":[["Sunny","No"],["Rain","Yes"]]}`, string(data))

	decoded, err := ded.Decode(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, ds.Lines(), decoded.Lines())
}

func TestEncodeEmptyDataset(t *testing.T) {
	ctx := context.Background()
	ds, err := dataset.New([]string{"A", "T"}, nil)
	require.NoError(t, err)
	data, err := New().Encode(ctx, ds)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["A","T"],"rows":[]}`, string(data))
	decoded, err := New().Decode(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Count())
}

func TestDecodeMalformed(t *testing.T) {
	ctx := context.Background()
	_, err := New().Decode(ctx, []byte(`{"columns":`))
	require.Error(t, err)

	_, err = New().Decode(ctx, []byte(`{"columns":["A","T"],"rows":[["x"]]}`))
	var fe *dataset.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Line)
}
