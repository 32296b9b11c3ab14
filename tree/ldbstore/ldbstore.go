/*
Package ldbstore provides a tree.NodeStore that keeps nodes on a LevelDB
database, so trees larger than memory can be grown and kept on disk.
*/
package ldbstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pbanos/id3/tree"
	"github.com/syndtr/goleveldb/leveldb"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {
	Encode(*tree.Node) ([]byte, error)
	Decode([]byte) (*tree.Node, error)
}

const (
	nodePrefix = "node:"
	nextIDKey  = "nextID"
)

type ldbStore struct {
	db      *leveldb.DB
	nencdec NodeEncodeDecoder
	lock    sync.Mutex
	nextID  uint64
}

/*
New builds a tree.NodeStore backed by the given LevelDB database. IDs are
assigned sequentially, resuming from the last one assigned on the database.
Closing the store closes the database.
*/
func New(db *leveldb.DB, nencdec NodeEncodeDecoder) (tree.NodeStore, error) {
	ls := &ldbStore{db: db, nencdec: nencdec}
	data, err := db.Get([]byte(nextIDKey), nil)
	switch {
	case err == leveldb.ErrNotFound:
	case err != nil:
		return nil, fmt.Errorf("reading last node id: %v", err)
	case len(data) != 8:
		return nil, fmt.Errorf("reading last node id: invalid value %x", data)
	default:
		ls.nextID = binary.BigEndian.Uint64(data)
	}
	return ls, nil
}

/*
Open opens or creates the LevelDB database at the given path and returns
a tree.NodeStore backed by it.
*/
func Open(path string, nencdec NodeEncodeDecoder) (tree.NodeStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb node store at %s: %v", path, err)
	}
	ns, err := New(db, nencdec)
	if err != nil {
		db.Close()
		return nil, err
	}
	return ns, nil
}

func (ls *ldbStore) Create(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ls.lock.Lock()
	defer ls.lock.Unlock()
	for {
		ls.nextID++
		n.ID = fmt.Sprintf("%d", ls.nextID)
		taken, err := ls.db.Has(keyFor(n.ID), nil)
		if err != nil {
			return fmt.Errorf("creating node: %v", err)
		}
		if !taken {
			break
		}
	}
	data, err := ls.nencdec.Encode(n)
	if err != nil {
		return fmt.Errorf("creating node: encoding node: %v", err)
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, ls.nextID)
	batch := new(leveldb.Batch)
	batch.Put([]byte(nextIDKey), next)
	batch.Put(keyFor(n.ID), data)
	err = ls.db.Write(batch, nil)
	if err != nil {
		return fmt.Errorf("creating node in leveldb: %v", err)
	}
	return nil
}

func (ls *ldbStore) Get(ctx context.Context, id string) (*tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := ls.db.Get(keyFor(id), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: %v", id, err)
	}
	n, err := ls.nencdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: decoding %q: %v", id, data, err)
	}
	return n, nil
}

func (ls *ldbStore) Store(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID == "" {
		return fmt.Errorf("storing node without ID")
	}
	data, err := ls.nencdec.Encode(n)
	if err != nil {
		return fmt.Errorf("storing node %q: encoding node: %v", n.ID, err)
	}
	err = ls.db.Put(keyFor(n.ID), data, nil)
	if err != nil {
		return fmt.Errorf("storing node %q in leveldb: %v", n.ID, err)
	}
	return nil
}

func (ls *ldbStore) Delete(ctx context.Context, n *tree.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := ls.db.Delete(keyFor(n.ID), nil)
	if err != nil {
		return fmt.Errorf("deleting node %q from leveldb: %v", n.ID, err)
	}
	return nil
}

func (ls *ldbStore) Close(ctx context.Context) error {
	return ls.db.Close()
}

func keyFor(id string) []byte {
	return []byte(nodePrefix + id)
}
