package stream

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Cell holds the latest value of T and fans every change out to its
// subscribers. A subscriber first receives the value current at subscription
// time, then every later Set in order. Slow subscribers buffer; they never
// block writers.
type Cell[T any] struct {
	mu     sync.RWMutex
	value  T
	subs   map[string]*Queue[T]
	done   chan struct{}
	closed bool
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[string]*Queue[T]),
		done:  make(chan struct{}),
	}
}

// Value returns the latest value.
func (c *Cell[T]) Value() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set replaces the value and publishes it. Sets after Close are ignored.
func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.value = value
	for _, q := range c.subs {
		q.Push(value)
	}
}

// Subscribe returns a channel carrying the current value followed by every
// later value. The channel closes when ctx ends or the cell is closed. Each
// call is an independent subscription.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	out := make(chan T)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(out)
		return out
	}
	id := uuid.Must(uuid.NewV7()).String()
	q := NewQueue[T]()
	q.Push(c.value)
	c.subs[id] = q
	c.mu.Unlock()

	go func() {
		defer close(out)
		defer c.unsubscribe(id)

		for {
			value, err := q.Receive(ctx)
			if err != nil {
				return
			}
			select {
			case out <- value:
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}()

	return out
}

func (c *Cell[T]) unsubscribe(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if q, ok := c.subs[id]; ok {
		q.Close()
		delete(c.subs, id)
	}
}

// Subscribers returns the number of live subscriptions.
func (c *Cell[T]) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}

// Close ends every subscription. The last value stays readable.
func (c *Cell[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	for id, q := range c.subs {
		q.Close()
		delete(c.subs, id)
	}
}
