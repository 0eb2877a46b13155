package types

import (
	"iter"
	"slices"
	"sync"
)

// CallbackManager is an ordered registry of callbacks of type T.
// The zero value is an empty registry ready to use.
type CallbackManager[T any] struct {
	mu     sync.RWMutex
	cbs    []registeredCallback[T]
	nextID uint64
}

type registeredCallback[T any] struct {
	id uint64
	cb T
}

// Len returns the number of registered callbacks.
func (m *CallbackManager[T]) Len() int {
	if m == nil {
		return 0
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cbs)
}

// Add registers cb and returns a function that removes it from the registry.
// The returned function is safe to call multiple times.
func (m *CallbackManager[T]) Add(cb T) (remove func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.cbs = append(m.cbs, registeredCallback[T]{id: id, cb: cb})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.cbs = slices.DeleteFunc(m.cbs, func(rc registeredCallback[T]) bool { return rc.id == id })
		m.mu.Unlock()
	}
}

// All returns an iterator over the callbacks in registration order.
// The iteration runs on a snapshot of the registry: callbacks added or
// removed while iterating take effect on the next call.
func (m *CallbackManager[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if m == nil {
			return
		}

		m.mu.RLock()
		snapshot := make([]T, len(m.cbs))
		for i, rc := range m.cbs {
			snapshot[i] = rc.cb
		}
		m.mu.RUnlock()

		for _, cb := range snapshot {
			if !yield(cb) {
				return
			}
		}
	}
}
