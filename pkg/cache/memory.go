package cache

import (
	"container/list"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value V
	key   string
}

// Memory is an in-memory LRU cache.
//
// A hash map gives O(1) lookups and a doubly-linked list keeps recency order:
// the most recently used entry sits at the front, the eviction candidate at
// the back.
type Memory[V any] struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     *memoryOptions
	onEvict  func(key string, value V)
	group    singleflight.Group
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates a new in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(10000))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := defaultMemoryOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
	}
}

// SetEvictCallback sets a function called whenever an entry leaves the cache
// through eviction, deletion or Clear.
func (m *Memory[V]) SetEvictCallback(fn func(key string, value V)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEvict = fn
}

// Get retrieves a value by key and marks it as recently used.
// Returns ErrNotFound if the key does not exist.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		var zero V
		return zero, ErrNotFound
	}

	m.eviction.MoveToFront(elem)
	return elem.Value.(*entry[V]).value, nil
}

// Set stores a value, evicting the least recently used entry when full.
func (m *Memory[V]) Set(_ context.Context, key string, value V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[key]; ok {
		elem.Value.(*entry[V]).value = value
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.removeElement(oldest)
		}
	}

	m.items[key] = m.eviction.PushFront(&entry[V]{key: key, value: value})
	return nil
}

// Delete removes a key from the cache.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.removeElement(elem)
	}
	return nil
}

// Has reports whether key is cached. It does not affect recency.
func (m *Memory[V]) Has(_ context.Context, key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

// Len returns the number of cached entries.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Clear removes all entries from the cache.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if m.onEvict != nil {
		for _, elem := range m.items {
			e := elem.Value.(*entry[V])
			m.onEvict(e.key, e.value)
		}
	}

	m.items = make(map[string]*list.Element)
	m.eviction.Init()
	return nil
}

// Close marks the cache as closed. Close is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// GetOrSet returns the cached value for key, or calls fn to load it on a miss.
// Concurrent misses for the same key share a single call to fn.
// Errors from fn are returned and nothing is cached.
func (m *Memory[V]) GetOrSet(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	if v, err := m.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := m.group.Do(key, func() (any, error) {
		// A caller that lost the race may arrive after the winner stored the value.
		if v, err := m.Get(ctx, key); err == nil {
			return v, nil
		}
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if err := m.Set(ctx, key, val); err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(V), nil
}

// removeElement removes elem and runs the eviction callback.
// Caller must hold the mutex.
func (m *Memory[V]) removeElement(elem *list.Element) {
	m.eviction.Remove(elem)
	e := elem.Value.(*entry[V])
	delete(m.items, e.key)

	if m.onEvict != nil {
		m.onEvict(e.key, e.value)
	}
}
