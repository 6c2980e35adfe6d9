// internal/store/store.go
//
// Session storage for live solver sessions.
// A Record holds only the walker cursor (feedback path) and the won flag; the
// decision tree itself is shared and never stored per session.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

// ErrNotFound is returned by Get for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Record is the persisted state of one session.
type Record struct {
	ID        string          `json:"id"`
	Tree      string          `json:"tree"` // fingerprint of the tree the cursor refers to
	Cursor    walker.Snapshot `json:"cursor"`
	Won       bool            `json:"won"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store defines the persistence interface for sessions.
// Implementations are backed by memory (this package) or Redis.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, r *Record) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
