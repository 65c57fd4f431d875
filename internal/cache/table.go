package cache

import (
	"sync"
	"time"

	"github.com/stockeye/stockeye/internal/common"
)

// entry is a cached value with its write timestamp.
type entry[T any] struct {
	Value   T         `json:"value"`
	Updated time.Time `json:"updated"`
}

// table is one TTL'd cache table. Each table has its own mutex; the
// tables are independent so there is no lock ordering to get wrong.
type table[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[T]
}

func newTable[T any](ttl time.Duration) *table[T] {
	return &table[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// get returns the value for key if it exists and is still fresh.
// Expired entries are removed on the way out (lazy expiry).
func (t *table[T]) get(key string, now time.Time) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !common.IsFreshAt(e.Updated, t.ttl, now) {
		delete(t.entries, key)
		var zero T
		return zero, false
	}
	return e.Value, true
}

func (t *table[T]) put(key string, value T, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = entry[T]{Value: value, Updated: now}
}

// sweep removes every expired entry and returns how many were dropped.
func (t *table[T]) sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, e := range t.entries {
		if !common.IsFreshAt(e.Updated, t.ttl, now) {
			delete(t.entries, key)
			removed++
		}
	}
	return removed
}

func (t *table[T]) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// snapshot copies the entry map for persistence.
func (t *table[T]) snapshot() map[string]entry[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]entry[T], len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// restore replaces the table contents, dropping entries already stale.
func (t *table[T]) restore(entries map[string]entry[T], now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = make(map[string]entry[T], len(entries))
	for k, e := range entries {
		if common.IsFreshAt(e.Updated, t.ttl, now) {
			t.entries[k] = e
		}
	}
}
