// Package state provides current-value containers: observable cells that
// always hold the latest value and can be read synchronously without
// waiting for an emission.
package state

import "sync"

// Value holds the most recent value of type T. It is written by a single
// subscription goroutine and read by any number of readers. Watchers
// receive the current value on subscribe and the latest value after every
// store; a slow watcher never blocks the writer, it just skips to the
// newest value (latest-wins).
type Value[T any] struct {
	mu       sync.RWMutex
	current  T
	watchers map[int]chan T
	nextID   int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:  initial,
		watchers: make(map[int]chan T),
	}
}

// Load returns the current value.
func (v *Value[T]) Load() T {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.current
}

// Store overwrites the current value and fans it out to all watchers.
func (v *Value[T]) Store(next T) {
	v.mu.Lock()
	v.current = next
	for _, ch := range v.watchers {
		offerLatest(ch, next)
	}
	v.mu.Unlock()
}

// Watch registers a watcher. The returned channel immediately carries the
// current value. The cancel func releases the watcher and closes the
// channel; calling it more than once is safe.
func (v *Value[T]) Watch() (<-chan T, func()) {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.watchers[id] = ch
	ch <- v.current
	v.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.watchers, id)
			v.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// offerLatest replaces the channel's stale value with next when the
// watcher has not drained the previous emission yet.
func offerLatest[T any](ch chan T, next T) {
	select {
	case ch <- next:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- next:
	default:
	}
}
