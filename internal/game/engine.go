// internal/game/engine.go
//
// Simulated Wordle game used to replay answers through the decision tree.
// Responsibilities:
//   - Create games against a fixed answer with the standard 6 rows.
//   - Validate and apply guesses (length, alphabetic).
//   - Score guesses with feedback.Score and return the colour code.
//   - Track state transitions: playing → won/lost.
//
// Unlike the real puzzle, guesses are not checked against an allowed list:
// any 5-letter word the tree proposes is accepted.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// DefaultRows is the number of guesses the puzzle allows.
const DefaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
)

// New constructs a game against answer with DefaultRows rows.
func New(answer string) *Game {
	return NewWithRows(answer, DefaultRows)
}

// NewWithRows constructs a game with a custom guess limit.
func NewWithRows(answer string, rows int) *Game {
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Game{
		ID:     randomID(),
		Answer: strings.ToLower(strings.TrimSpace(answer)),
		Rows:   rows,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the feedback code, the new state, or an error.
//
// State transitions:
//   - All green → Finished, Won.
//   - Else if the number of guesses reaches g.Rows → Finished (loss).
func (g *Game) ApplyGuess(guess string) (feedback.Code, State, error) {
	if g.Finished {
		return "", g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != feedback.Length || !isAlpha(guess) {
		return "", g.State(), ErrInvalidGuess
	}

	code, err := feedback.Score(g.Answer, guess)
	if err != nil {
		return "", g.State(), err
	}
	g.Guesses = append(g.Guesses, guess)
	g.Feedbacks = append(g.Feedbacks, code)

	if code.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return code, g.State(), nil
}

// State reports the coarse game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
