package walker

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

// ErrBadSnapshot is returned when a snapshot does not fit the tree.
var ErrBadSnapshot = errors.New("snapshot does not match tree")

// Snapshot is a serializable description of a walker's cursor: the feedback
// committed so far and whether a guess is currently outstanding.
type Snapshot struct {
	Path   []feedback.Code `json:"path"`
	Issued bool            `json:"issued"`
}

// Snapshot captures the cursor.
func (w *Walker) Snapshot() Snapshot {
	return Snapshot{Path: w.Path(), Issued: w.fresh}
}

// Restore rebuilds a walker over t by replaying s.
func Restore(t *tree.Tree, s Snapshot) (*Walker, error) {
	w := New(t)
	for i, code := range s.Path {
		if !feedback.IsValid(string(code)) {
			return nil, fmt.Errorf("%w: round %d: %q is not a feedback code", ErrBadSnapshot, i+1, code)
		}
		if _, err := w.NextGuess(); err != nil {
			return nil, fmt.Errorf("%w: round %d: %w", ErrBadSnapshot, i+1, err)
		}
		w.RecordFeedback(code)
	}
	if s.Issued {
		if _, err := w.NextGuess(); err != nil {
			return nil, fmt.Errorf("%w: pending guess: %w", ErrBadSnapshot, err)
		}
	}
	return w, nil
}
