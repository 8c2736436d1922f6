package store

import "sync"

// Value is a single reactive value, e.g. the signed-in user or the current team.
type Value[T any] struct {
	mu      sync.RWMutex
	val     T
	set     bool
	nextSub int
	subs    map[int]func(T, bool)
}

func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]func(T, bool))}
}

// Get returns the value and whether one is set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val, v.set
}

func (v *Value[T]) Set(val T) {
	v.update(val, true)
}

func (v *Value[T]) Clear() {
	var zero T
	v.update(zero, false)
}

func (v *Value[T]) update(val T, set bool) {
	v.mu.Lock()
	v.val = val
	v.set = set
	fns := make([]func(T, bool), 0, len(v.subs))
	for _, fn := range v.subs {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(val, set)
	}
}

// Subscribe calls fn on every change; set is false after Clear.
func (v *Value[T]) Subscribe(fn func(val T, set bool)) (cancel func()) {
	v.mu.Lock()
	v.nextSub++
	id := v.nextSub
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
