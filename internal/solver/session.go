// internal/solver/session.go
//
// Input/presentation glue around a walker, shared by the HTTP API and the
// interactive CLI.
// Responsibilities:
//   - Validate raw feedback before it reaches the walker.
//   - Recognise the all-green code as a win.
//   - Turn walker results into an Outcome with a status and a message.
//
// Flow per submission:
//   invalid format   → invalid_feedback (walker untouched)
//   "GGGGG"          → won
//   otherwise        → RecordFeedback, NextGuess
//                        no guess    → no_guess (re-enter feedback or reset)
//                        last guess  → winning_next
//                        else        → optimal

package solver

import (
	"errors"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

// Status classifies an Outcome.
type Status string

const (
	StatusOptimal         Status = "optimal"
	StatusWinningNext     Status = "winning_next"
	StatusWon             Status = "won"
	StatusInvalidFeedback Status = "invalid_feedback"
	StatusNoGuess         Status = "no_guess"
)

const (
	msgOptimal     = "The optimal next guess is:"
	msgWinningNext = "Congratulations! The next guess will be the winner!"
	msgWon         = "Congratulations! We've won the game!"
	msgInvalid     = "Error: feedback was entered incorrectly."
	msgNoGuess     = "Error: we've reached an invalid state. You must've entered feedback incorrectly. " +
		"Try re-inputting it or resetting the game."
)

// Outcome is what the presentation layer shows after each step.
type Outcome struct {
	Status  Status          `json:"status"`
	Guess   string          `json:"guess,omitempty"`
	Message string          `json:"message"`
	Round   int             `json:"round"` // 1-based number of the guess shown
	Path    []feedback.Code `json:"path"`
}

// Session drives one puzzle.
type Session struct {
	w   *walker.Walker
	won bool
}

// New wraps w. won restores a session that already finished.
func New(w *walker.Walker, won bool) *Session {
	return &Session{w: w, won: won}
}

// Walker exposes the underlying walker (for snapshots).
func (s *Session) Walker() *walker.Walker { return s.w }

// Won reports whether the puzzle has been solved.
func (s *Session) Won() bool { return s.won }

// Start returns the guess for the current position without recording
// anything; on a fresh walker this is the opening guess.
func (s *Session) Start() Outcome {
	if s.won {
		return s.outcome(StatusWon, "", msgWon)
	}
	return s.advise()
}

// Submit applies raw feedback for the last guess shown.
func (s *Session) Submit(raw string) Outcome {
	if s.won {
		return s.outcome(StatusWon, "", msgWon)
	}
	code, err := feedback.Parse(raw)
	if err != nil {
		return s.outcome(StatusInvalidFeedback, "", msgInvalid)
	}
	if code.Solved() {
		s.won = true
		return s.outcome(StatusWon, "", msgWon)
	}
	s.w.RecordFeedback(code)
	return s.advise()
}

// Reset rewinds to the opening guess.
func (s *Session) Reset() Outcome {
	s.w.Reset()
	s.won = false
	return s.advise()
}

func (s *Session) advise() Outcome {
	g, err := s.w.NextGuess()
	switch {
	case errors.Is(err, walker.ErrSolved):
		s.won = true
		return s.outcome(StatusWon, "", msgWon)
	case err != nil:
		return s.outcome(StatusNoGuess, "", msgNoGuess)
	}
	win, err := s.w.IsWinningNext()
	switch {
	case err != nil:
		return s.outcome(StatusNoGuess, "", msgNoGuess)
	case win:
		return s.outcome(StatusWinningNext, g.Word, msgWinningNext)
	}
	return s.outcome(StatusOptimal, g.Word, msgOptimal)
}

func (s *Session) outcome(st Status, guess, msg string) Outcome {
	path := s.w.Path()
	if path == nil {
		path = []feedback.Code{}
	}
	round := len(path)
	if guess != "" {
		round++
	}
	return Outcome{Status: st, Guess: guess, Message: msg, Round: round, Path: path}
}
