package queue

import (
	"context"
	"fmt"
	"testing"

	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id string) *Task {
	return &Task{Node: &tree.Node{ID: id}}
}

func TestQueueIsFIFO(t *testing.T) {
	ctx := context.Background()
	q := New()
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Push(ctx, task(fmt.Sprint(i))))
	}
	first, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0", first.ID())
	// wrap around the ring while tasks are pending
	for i := 3; i < 10; i++ {
		require.NoError(t, q.Push(ctx, task(fmt.Sprint(i))))
	}
	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, count)
	for i := 1; i < 10; i++ {
		next, err := q.Pull(ctx)
		require.NoError(t, err)
		require.NotNil(t, next)
		assert.Equal(t, fmt.Sprint(i), next.ID())
		if i%3 == 0 {
			require.NoError(t, q.Push(ctx, task(fmt.Sprint(i+100))))
		}
	}
	for _, id := range []string{"103", "106", "109"} {
		next, err := q.Pull(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, next.ID())
	}
	empty, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestQueueHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := New()
	assert.Error(t, q.Push(ctx, task("1")))
	_, err := q.Pull(ctx)
	assert.Error(t, err)
}

func TestTaskIsRoot(t *testing.T) {
	assert.True(t, task("1").IsRoot())
}
