package cache

import (
	"sync"
	"time"
)

// Entry is the stored record shape shared by every cache backend.
type Entry[T any] struct {
	Key       string    `json:"key"`
	Value     T         `json:"result"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the entry's lifetime has passed. Entries with a
// zero ExpiresAt never expire.
func (e *Entry[T]) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Memory is a process-local TTL cache. A zero ttl means entries never
// expire. Concurrent requests for the same missing key may race; callers
// are expected to treat writes as idempotent (last write wins).
type Memory[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Entry[T]
	now     func() time.Time
}

// NewMemory creates a memory cache whose entries live for ttl (0 = forever).
func NewMemory[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{
		ttl:     ttl,
		entries: make(map[string]Entry[T]),
		now:     time.Now,
	}
}

// Get returns the cached value for key. Expired entries are dropped lazily.
func (m *Memory[T]) Get(key string) (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	entry, ok := m.entries[key]
	if !ok {
		return zero, false
	}
	if entry.Expired(m.now()) {
		delete(m.entries, key)
		return zero, false
	}
	return entry.Value, true
}

// Set stores value under key, replacing any previous entry.
func (m *Memory[T]) Set(key string, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := Entry[T]{Key: key, Value: value, CreatedAt: now}
	if m.ttl > 0 {
		entry.ExpiresAt = now.Add(m.ttl)
	}
	m.entries[key] = entry
}

// Delete removes key if present.
func (m *Memory[T]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// SweepExpired scans all entries and drops the expired ones, returning how
// many were removed.
func (m *Memory[T]) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.entries {
		if entry.Expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, expired or not.
func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
