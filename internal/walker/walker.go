// internal/walker/walker.go
//
// Cursor over a decision tree for one live puzzle.
// Responsibilities:
//   - Hand out the next guess for the feedback recorded so far (NextGuess).
//   - Advance the cursor once feedback for that guess arrives (RecordFeedback).
//   - Tell whether the guess just handed out must be the answer (IsWinningNext).
//   - Rewind to the opening guess (Reset).
//
// State machine:
//
//	AwaitingGuess --NextGuess--> GuessIssued --RecordFeedback--> AwaitingGuess
//
// Notes:
//   - A Walker is owned by a single caller and is not safe for concurrent use.
//     Independent sessions each hold their own Walker over a shared Tree.
//   - The walker never mutates the tree.
//   - It does not special-case "GGGGG" input; recognising a win from user input
//     is the caller's job. NextGuess only reports ErrSolved when the tree says
//     nothing is left to guess.

package walker

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

var (
	// ErrNoGuess means the tree has no guess for the current feedback history.
	ErrNoGuess = errors.New("no guess available for this feedback")

	// ErrSolved means there is nothing left to guess because the puzzle is solved.
	// It matches ErrNoGuess under errors.Is.
	ErrSolved = fmt.Errorf("%w: puzzle already solved", ErrNoGuess)

	// ErrNoGuessIssued is returned by IsWinningNext before any guess was handed out.
	ErrNoGuessIssued = errors.New("no guess has been issued yet")
)

// Key selects the active entry of the current node: either the opening
// guess or the branch for a feedback code.
type Key struct {
	code feedback.Code
}

// RootKey selects the opening guess.
var RootKey = Key{}

// FeedbackKey selects the branch for code.
func FeedbackKey(code feedback.Code) Key { return Key{code: code} }

// IsRoot reports whether k selects the opening guess.
func (k Key) IsRoot() bool { return k.code == "" }

// Code returns the feedback code of a non-root key.
func (k Key) Code() feedback.Code { return k.code }

func (k Key) String() string {
	if k.IsRoot() {
		return tree.RootKey
	}
	return string(k.code)
}

// Guess is a word handed out by NextGuess together with the subtree the
// walker moves into once feedback for it is recorded.
type Guess struct {
	Word string
	Next *tree.Node
}

// Walker is the mutable cursor state.
type Walker struct {
	tree    *tree.Tree
	current *tree.Node // nil while key is RootKey
	pending *tree.Node // nil until a guess is issued
	key     Key

	fresh bool            // pending came from the latest NextGuess and is not committed yet
	path  []feedback.Code // committed feedback, oldest first
}

// New returns a walker positioned before the opening guess of t.
func New(t *tree.Tree) *Walker {
	w := &Walker{tree: t}
	w.Reset()
	return w
}

// Key returns the lookup key for the next NextGuess call.
func (w *Walker) Key() Key { return w.key }

// Path returns a copy of the feedback committed so far.
func (w *Walker) Path() []feedback.Code {
	return append([]feedback.Code(nil), w.path...)
}

// NextGuess looks up the branch for the current key.
//
// On success the branch's subtree becomes pending and the guess is returned.
// Otherwise the error wraps ErrNoGuess (ErrSolved when the puzzle is over) and
// the pending subtree is left as it was, so recording corrected feedback for
// the previous guess still works without a reset.
//
// Repeated calls without RecordFeedback return the same guess.
func (w *Walker) NextGuess() (Guess, error) {
	b, ok := w.lookup()
	switch {
	case ok && !b.WinMarker():
		w.pending = b.Next
		w.fresh = true
		return Guess{Word: b.Guess, Next: b.Next}, nil
	case ok:
		return Guess{}, ErrSolved
	case !w.key.IsRoot() && w.key.Code().Solved() && w.current.Terminal():
		return Guess{}, ErrSolved
	}
	return Guess{}, fmt.Errorf("%w: %s after %d rounds", ErrNoGuess, w.key, len(w.path))
}

// RecordFeedback commits the pending subtree as the current node and uses
// code for the next lookup. code must already be a valid feedback code.
//
// Without a pending subtree (no guess issued since start or reset) the call
// is a no-op. Calling it twice before the next NextGuess keeps the same node
// and replaces the code.
func (w *Walker) RecordFeedback(code feedback.Code) {
	if w.pending == nil {
		return
	}
	w.current = w.pending
	w.key = FeedbackKey(code)
	if w.fresh || len(w.path) == 0 {
		w.path = append(w.path, code)
	} else {
		w.path[len(w.path)-1] = code
	}
	w.fresh = false
}

// IsWinningNext reports whether the pending subtree is a terminal leaf, that
// is, whether the last guess handed out is necessarily the answer.
func (w *Walker) IsWinningNext() (bool, error) {
	if w.pending == nil {
		return false, ErrNoGuessIssued
	}
	return w.pending.Terminal(), nil
}

// Reset rewinds the cursor to the opening guess. The tree is untouched.
func (w *Walker) Reset() {
	w.current = nil
	w.pending = nil
	w.key = RootKey
	w.fresh = false
	w.path = nil
}

func (w *Walker) lookup() (tree.Branch, bool) {
	if w.key.IsRoot() {
		if w.tree == nil {
			return tree.Branch{}, false
		}
		return w.tree.Root, true
	}
	return w.current.Branch(w.key.Code())
}
