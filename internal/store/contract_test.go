package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

// runContract exercises behaviour every Store must share.
func runContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := &Record{
		ID:        "s1",
		Tree:      "abc123",
		Cursor:    walker.Snapshot{Path: []feedback.Code{"BBGBG"}, Issued: true},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, rec.Tree, got.Tree)
	assert.Equal(t, rec.Cursor, got.Cursor)
	assert.False(t, got.Won)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))

	// Mutating the returned record must not leak into the store.
	got.Cursor.Path[0] = "YYYYY"
	again, err := s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, feedback.Code("BBGBG"), again.Cursor.Path[0])

	rec.Won = true
	rec.Cursor = walker.Snapshot{Path: []feedback.Code{"BBGBG", "GBGBG"}}
	require.NoError(t, s.Save(ctx, rec))
	got, err = s.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Won)
	assert.Len(t, got.Cursor.Path, 2)

	require.NoError(t, s.Delete(ctx, "s1"))
	_, err = s.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "s1"))
}

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, NewMemoryStore(0))
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore(time.Minute).(*memory)
	clock := time.Now()
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &Record{ID: "a", UpdatedAt: clock}))
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ExpiryKeepsConcurrentSave(t *testing.T) {
	s := NewMemoryStore(time.Minute).(*memory)
	clock := time.Now()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &Record{ID: "a", UpdatedAt: clock.Add(-2 * time.Minute)}))

	// A fresh Save lands between reading the stale record and dropping it.
	saved := false
	s.now = func() time.Time {
		if !saved {
			saved = true
			require.NoError(t, s.Save(ctx, &Record{ID: "a", UpdatedAt: clock}))
		}
		return clock
	}

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, clock, got.UpdatedAt)
}

func TestMemoryStore_ExpiredRecordIsDropped(t *testing.T) {
	s := NewMemoryStore(time.Minute).(*memory)
	clock := time.Now()
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &Record{ID: "a", UpdatedAt: clock.Add(-2 * time.Minute)}))
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	s.mu.RLock()
	_, ok := s.sessions["a"]
	s.mu.RUnlock()
	assert.False(t, ok)
}
