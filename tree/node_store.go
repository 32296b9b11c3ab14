package tree

import (
	"context"
	"fmt"
	"sync"
)

/*
NodeStore is an interface to manage a store
where nodes can be created, retrieved, updated
and deleted.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type NodeStore interface {
	// Create takes a node and stores it for the
	// first time in the store, creating an ID for
	// it and setting it for the node. It returns
	// an error if the node cannot be stored.
	Create(ctx context.Context, n *Node) error
	// Get takes an id and returns the node in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id string) (*Node, error)
	// Store takes a node already existing in the store
	// and updates it on the store. It expect the node
	// to have an ID which it will not alter. It returns
	// an error if the update cannot be performed.
	Store(ctx context.Context, n *Node) error
	// Delete takes a node already existing in the store
	// and deletes it on the store. It returns an error
	// if the node exist but the deletion cannot be
	// performed.
	Delete(ctx context.Context, n *Node) error
	// Close closes the store, implementations should
	// freeing any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed (because of the
	// context or another error)
	Close(ctx context.Context) error
}

type memoryNodeStore struct {
	nodes  map[string]*Node
	lock   sync.RWMutex
	nextID uint64
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend. IDs are assigned
// sequentially, so growing the same tree twice
// yields the same IDs.
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{
		nodes: make(map[string]*Node),
	}
}

func (mns *memoryNodeStore) Create(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mns.lock.Lock()
	defer mns.lock.Unlock()
	taken := true
	for taken {
		mns.nextID++
		n.ID = fmt.Sprintf("%d", mns.nextID)
		_, taken = mns.nodes[n.ID]
	}
	mns.nodes[n.ID] = n
	return nil
}

func (mns *memoryNodeStore) Store(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID == "" {
		return fmt.Errorf("storing node without ID")
	}
	mns.lock.Lock()
	defer mns.lock.Unlock()
	mns.nodes[n.ID] = n
	return nil
}

func (mns *memoryNodeStore) Get(ctx context.Context, id string) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mns.lock.RLock()
	defer mns.lock.RUnlock()
	return mns.nodes[id], nil
}

func (mns *memoryNodeStore) Delete(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mns.lock.Lock()
	defer mns.lock.Unlock()
	delete(mns.nodes, n.ID)
	return nil
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}
