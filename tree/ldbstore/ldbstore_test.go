package ldbstore

import (
	"context"
	"strings"
	"testing"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

func memStore(t *testing.T) (*leveldb.DB, tree.NodeStore) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)
	ns, err := New(db, json.NewNodeEncodeDecoder())
	require.NoError(t, err)
	return db, ns
}

func TestNodeLifecycle(t *testing.T) {
	ctx := context.Background()
	_, ns := memStore(t)
	defer ns.Close(ctx)

	n := &tree.Node{Attribute: "Play", Label: "Yes"}
	require.NoError(t, ns.Create(ctx, n))
	assert.Equal(t, "1", n.ID)

	got, err := ns.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, n, got)

	n.Label = "No"
	require.NoError(t, ns.Store(ctx, n))
	got, err = ns.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "No", got.Label)

	require.NoError(t, ns.Delete(ctx, n))
	got, err = ns.Get(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, ns.Store(ctx, &tree.Node{}))
}

func TestIDsResumeOnReopen(t *testing.T) {
	ctx := context.Background()
	db, ns := memStore(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, ns.Create(ctx, &tree.Node{Attribute: "T"}))
	}
	reopened, err := New(db, json.NewNodeEncodeDecoder())
	require.NoError(t, err)
	n := &tree.Node{Attribute: "T"}
	require.NoError(t, reopened.Create(ctx, n))
	assert.Equal(t, "4", n.ID)
	require.NoError(t, reopened.Close(ctx))
}

func TestGrowOnLevelDB(t *testing.T) {
	ctx := context.Background()
	_, ns := memStore(t)
	defer ns.Close(ctx)
	s, err := dataset.Read(strings.NewReader("Outlook,Windy,Play\nSunny,False,Yes\nSunny,True,No\nRain,False,Yes\nOvercast,True,Yes\n"), "test.csv")
	require.NoError(t, err)

	g := &id3.Grower{NodeStore: ns}
	onDisk, err := g.Grow(ctx, s)
	require.NoError(t, err)
	inMemory, err := id3.Grow(ctx, s, nil)
	require.NoError(t, err)

	equal, err := tree.Equal(ctx, inMemory, onDisk)
	require.NoError(t, err)
	assert.True(t, equal)
	label, err := onDisk.Predict(ctx, s.Sample(1))
	require.NoError(t, err)
	assert.Equal(t, "No", label)
}
