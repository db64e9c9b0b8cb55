package ephemeral

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// Memory is an in-process Store. Values are stored and returned by copy, so
// a reader never observes a half-written record. Concurrent writers to the
// same key resolve last-writer-wins.
//
// Memory does not survive restarts and is not shared between instances; use
// Redis for multi-instance deployments.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[T]
	now     func() time.Time
}

// NewMemory returns an empty in-process store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		entries: make(map[string]memoryEntry[T]),
		now:     time.Now,
	}
}

func (m *Memory[T]) Put(_ context.Context, key string, value T, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry[T]{value: value, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[T]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *Memory[T]) Sweep(_ context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, e := range m.entries {
		if !e.expiresAt.After(now) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory[T]) Ping(context.Context) error { return nil }

// Len returns the number of entries, expired or not.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
