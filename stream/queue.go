// Package stream provides the channel plumbing shared by the state stores and
// the settings repository: an unbounded FIFO mailbox, a latest-value cell
// with restartable subscriptions, and a combine-latest join.
package stream

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Receive once the queue has been closed.
var ErrClosed = errors.New("stream closed")

// Queue is an unbounded FIFO mailbox. Push never blocks, so producers are
// never stalled by a slow consumer. It is intended for a single consumer.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	ready  chan struct{}
	done   chan struct{}
	closed bool
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Push appends item. It returns false, dropping the item, if the queue is
// closed.
func (q *Queue[T]) Push(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, item)
	q.signal()
	return true
}

// Receive blocks until an item is available, ctx ends, or the queue closes.
// Items still pending when the queue closes are discarded.
func (q *Queue[T]) Receive(ctx context.Context) (T, error) {
	for {
		if item, ok, err := q.pop(); ok || err != nil {
			return item, err
		}

		select {
		case <-q.ready:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-q.done:
			var zero T
			return zero, ErrClosed
		}
	}
}

// TryReceive returns the next item without blocking.
func (q *Queue[T]) TryReceive() (T, bool) {
	item, ok, _ := q.pop()
	return item, ok
}

func (q *Queue[T]) pop() (T, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.closed {
		return zero, false, ErrClosed
	}
	if len(q.items) == 0 {
		return zero, false, nil
	}

	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) > 0 {
		q.signal()
	}
	return item, true, nil
}

// signal must be called with mu held.
func (q *Queue[T]) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Close stops the queue. It is safe to call more than once.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.items = nil
	close(q.done)
}

func (q *Queue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
