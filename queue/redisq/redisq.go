/*
Package redisq provides an implementation of queue.Queue backed by a
redis list, so the pending tasks of a growing tree live on a redis server
instead of the process memory.
*/
package redisq

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/queue"
	redis "gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding tasks as slices of bytes and decoding
them back to tasks. It is used to serialize tasks into a
representation to store on redis
*/
type EncodeDecoder interface {

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

type redisQ struct {
	id string
	rc *redis.Client
	EncodeDecoder
}

/*
New returns a queue.Queue that uses the given redis client as a
backend. It uses the given id to prefix the keys used on the
redis client to keep the queue's data:
  * id:pending is the key to a list with the encoded pending tasks,
  oldest first.
Tasks are encoded and decoded using the given EncodeDecoder.

The returned queue is secure for concurrent use by multiple goroutines.
*/
func New(id string, rc *redis.Client, encDec EncodeDecoder) queue.Queue {
	return &redisQ{id: id, rc: rc, EncodeDecoder: encDec}
}

// Push takes a task and appends it to the pending
// list or returns an error.
func (rq *redisQ) Push(ctx context.Context, t *queue.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := rq.Encode(ctx, t)
	if err != nil {
		return fmt.Errorf("pushing task %s to queue: %v", t.ID(), err)
	}
	err = rq.rc.RPush(rq.pendingListKey(), string(data)).Err()
	if err != nil {
		return fmt.Errorf("pushing task %s to queue: %v", t.ID(), err)
	}
	return nil
}

// Pull removes the oldest task from the pending list
// and returns it, or 2 nil values if there are none.
func (rq *redisQ) Pull(ctx context.Context) (*queue.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rq.rc.LPop(rq.pendingListKey()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pulling task from %q: %v", rq.pendingListKey(), err)
	}
	t, err := rq.Decode(ctx, []byte(data))
	if err != nil {
		return nil, fmt.Errorf("pulling task from %q: %v", rq.pendingListKey(), err)
	}
	return t, nil
}

// Count returns the number of pending tasks
// in the queue or an error
func (rq *redisQ) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := rq.rc.LLen(rq.pendingListKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %v", err)
	}
	return int(n), nil
}

func (rq *redisQ) String() string {
	return fmt.Sprintf("{RedisQueue %s}", rq.pendingListKey())
}

func (rq *redisQ) pendingListKey() string {
	return fmt.Sprintf("%s:pending", rq.id)
}
