// internal/store/memory.go
//
// In-memory implementation of Store.
//
// Characteristics:
//   - Records keyed by ID in a map, copied in and out so callers never share state.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Optional TTL: records not saved within ttl are treated as missing.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex       // guards sessions map
	sessions map[string]*Record // keyed by Record.ID
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store. ttl <= 0 keeps records forever.
func NewMemoryStore(ttl time.Duration) Store {
	return &memory{sessions: make(map[string]*Record), ttl: ttl, now: time.Now}
}

// Save adds or updates the record in the map.
func (m *memory) Save(ctx context.Context, r *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[r.ID] = clone(r)
	return nil
}

// Get looks up a record by ID. An expired record is dropped, unless a Save
// replaced it after the read lock was released.
func (m *memory) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	r, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !m.expired(r) {
		return clone(r), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[id]; ok && m.expired(cur) {
		delete(m.sessions, id)
	}
	return nil, ErrNotFound
}

func (m *memory) expired(r *Record) bool {
	return m.ttl > 0 && m.now().Sub(r.UpdatedAt) > m.ttl
}

// Delete drops a record.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func clone(r *Record) *Record {
	c := *r
	c.Cursor.Path = append([]feedback.Code(nil), r.Cursor.Path...)
	return &c
}
