package common

import "sync"

// Map is a concurrent map. It wraps the standard library's map with a mutex for concurrent access.
type Map[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}

// NewMap returns a new Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		m: make(map[K]V),
	}
}

// Set sets the key k to the value v.
func (m *Map[K, V]) Set(k K, v V) {
	m.mu.Lock()
	m.m[k] = v
	m.mu.Unlock()
}

// Get gets the value at key k, or the zero value if not set.
func (m *Map[K, V]) Get(k K) (v V, ok bool) {
	m.mu.RLock()
	v, ok = m.m[k]
	m.mu.RUnlock()
	return v, ok
}

// GetOrCreate gets the value at key k, storing and returning the value
// returned by create if the key is not set.
func (m *Map[K, V]) GetOrCreate(k K, create func() V) (v V) {
	m.mu.Lock()
	v, ok := m.m[k]
	if !ok {
		v = create()
		m.m[k] = v
	}
	m.mu.Unlock()
	return v
}

// Remove removes a key from the map. It returns true if the key existed in the map, false otherwise.
func (m *Map[K, V]) Remove(k K) (exists bool) {
	m.mu.Lock()
	_, exists = m.m[k]
	delete(m.m, k)
	m.mu.Unlock()
	return exists
}

// Exists returns true if key exists in the map, false otherwise.
func (m *Map[K, V]) Exists(k K) (exists bool) {
	m.mu.RLock()
	_, exists = m.m[k]
	m.mu.RUnlock()
	return exists
}

// Length returns the size of m.
func (m *Map[K, V]) Length() int {
	m.mu.RLock()
	c := len(m.m)
	m.mu.RUnlock()
	return c
}

// Keys returns all keys in m. The returned slice is unordered.
func (m *Map[K, V]) Keys() []K {
	m.mu.RLock()
	keys := make([]K, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	return keys
}

// Clear removes all keys from the map.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	m.m = make(map[K]V)
	m.mu.Unlock()
}

// ReadFunc runs fn with the mutex locked for reading.
// The raw map is passed to fn.
func (m *Map[K, V]) ReadFunc(fn func(map[K]V)) {
	m.mu.RLock()
	fn(m.m)
	m.mu.RUnlock()
}

// WriteFunc runs fn with the mutex locked for writing.
// The raw map is passed to fn.
func (m *Map[K, V]) WriteFunc(fn func(map[K]V)) {
	m.mu.Lock()
	fn(m.m)
	m.mu.Unlock()
}
