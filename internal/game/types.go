// internal/game/types.go
//
// Core type definitions for the simulated Wordle game.
// Defines:
//   - State: coarse game state (playing/won/lost).
//   - Game: state for a single game played against a known answer.

package game

import "github.com/robalobadob/wordle/apps/go-solver/internal/feedback"

// State is the coarse game state reported after each guess.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single simulated Wordle game.
type Game struct {
	ID        string          // Unique game identifier (random hex string).
	Answer    string          // The solution word (always lowercase).
	Rows      int             // Maximum number of guesses allowed (typically 6).
	Guesses   []string        // Guesses made so far (lowercased).
	Feedbacks []feedback.Code // Feedback returned for each guess.
	Finished  bool            // True once the game is over (won or lost).
	Won       bool            // True if the game was finished with a win.
}
