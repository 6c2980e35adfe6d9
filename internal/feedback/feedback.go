// internal/feedback/feedback.go
//
// Feedback codes: the puzzle's colour response to a guess.
// Defines:
//   - Code: a 5-character sequence over {G, Y, B}.
//   - IsValid / Parse: format validation for raw user input.
//   - Score: the classic two-pass Wordle evaluation, producing a Code.
//
// Letters:
//   G = correct letter, correct position (green)
//   Y = letter present elsewhere in the answer (yellow)
//   B = letter absent (black/grey)

package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of tiles in a feedback code.
const Length = 5

const (
	Green  byte = 'G'
	Yellow byte = 'Y'
	Black  byte = 'B'
)

// AllGreen is the code the puzzle returns for a correct guess.
const AllGreen Code = "GGGGG"

// ErrInvalidFeedback is returned by Parse for malformed codes.
var ErrInvalidFeedback = errors.New("invalid feedback format")

// Code is a validated feedback code such as "GYBBB".
type Code string

// IsValid reports whether s is exactly 5 characters, each one of G, Y or B.
func IsValid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case Green, Yellow, Black:
		default:
			return false
		}
	}
	return true
}

// Parse normalises raw input (trim + upper-case) and validates it.
func Parse(raw string) (Code, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !IsValid(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFeedback, raw)
	}
	return Code(s), nil
}

// Solved reports whether c is the all-green code.
func (c Code) Solved() bool { return c == AllGreen }

func (c Code) String() string { return string(c) }

// Score returns the feedback the puzzle gives for guess against answer.
//
// Pass 1 marks greens and counts the answer letters left unmatched.
// Pass 2 marks a non-green guess letter yellow while unmatched copies remain,
// black otherwise. This keeps repeated letters honest in both words.
//
// Both words are compared case-insensitively and must have the same length.
func Score(answer, guess string) (Code, error) {
	answer, guess = strings.ToLower(answer), strings.ToLower(guess)
	if len(answer) != Length || len(guess) != Length {
		return "", fmt.Errorf("score %q against %q: words must be %d letters", guess, answer, Length)
	}

	out := make([]byte, Length)
	var counts [256]int

	for i := 0; i < Length; i++ {
		if guess[i] == answer[i] {
			out[i] = Green
		} else {
			counts[answer[i]]++
		}
	}
	for i := 0; i < Length; i++ {
		if out[i] == Green {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			out[i] = Yellow
			counts[c]--
		} else {
			out[i] = Black
		}
	}
	return Code(out), nil
}
