// Package store holds the reactive state shared between services and views.
package store

import "sync"

// Ticket identifies one load. Only the newest ticket may commit.
type Ticket uint64

type subscriber[T any] struct {
	id int
	fn func([]T)
}

// Collection is the latest fetched list of one resource type. It is replaced
// wholesale on every commit and never diffed.
type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	loading bool
	latest  Ticket
	nextSub int
	subs    []subscriber[T]
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Begin starts a load and returns its ticket. Any earlier ticket becomes stale.
func (c *Collection[T]) Begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.loading = true
	return c.latest
}

// Commit replaces the items if ticket is still the newest load.
// It reports whether the items were applied.
func (c *Collection[T]) Commit(ticket Ticket, items []T) bool {
	c.mu.Lock()
	if ticket != c.latest {
		c.mu.Unlock()
		return false
	}
	c.loading = false
	c.items = clone(items)
	subs := c.snapshotSubs()
	snapshot := clone(c.items)
	c.mu.Unlock()

	notify(subs, snapshot)
	return true
}

// Fail ends a load without touching the items.
func (c *Collection[T]) Fail(ticket Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket == c.latest {
		c.loading = false
	}
}

// Set replaces the items unconditionally and invalidates any load in flight.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	c.latest++
	c.loading = false
	c.items = clone(items)
	subs := c.snapshotSubs()
	snapshot := clone(c.items)
	c.mu.Unlock()

	notify(subs, snapshot)
}

// Find returns the first item matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Subscribe registers fn to be called with every new set of items. The returned
// function removes the subscription.
func (c *Collection[T]) Subscribe(fn func([]T)) (cancel func()) {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i], c.subs[i+1:]...)
					break
				}
			}
		})
	}
}

// caller holds c.mu
func (c *Collection[T]) snapshotSubs() []subscriber[T] {
	return append([]subscriber[T](nil), c.subs...)
}

func notify[T any](subs []subscriber[T], items []T) {
	for _, s := range subs {
		s.fn(clone(items))
	}
}

func clone[T any](items []T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
