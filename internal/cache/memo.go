package cache

import "sync"

// Memo remembers the result of compute per key for the life of the process.
// Concurrent callers of the same missing key may both compute; the first
// stored value wins.
type Memo[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
}

func NewMemo[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{values: make(map[K]V)}
}

func (m *Memo[K, V]) Get(key K, compute func(K) V) (value V, hit bool) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if ok {
		return v, true
	}

	computed := compute(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v, true
	}
	m.values[key] = computed
	return computed, false
}

func (m *Memo[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
