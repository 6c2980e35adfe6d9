// internal/tree/validate.go
//
// Structural checks and statistics for a decoded tree.
// Validation does not judge optimality, only that the tree is playable:
//   - the opening guess exists;
//   - every guess is 5 ASCII letters;
//   - win markers sit under the all-green code and have no subtree;
//   - the all-green code never leads to a further guess;
//   - no path needs more than maxRounds guesses.

package tree

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Stats summarises a tree's shape.
type Stats struct {
	Depth    int `json:"depth"`    // guesses along the longest path
	Guesses  int `json:"guesses"`  // branches carrying a guess, root included
	Terminal int `json:"terminal"` // guesses that are necessarily the answer
}

// Validate reports every structural problem found in t, joined into one
// error wrapping ErrInvalidTree. maxRounds <= 0 disables the depth check.
func Validate(t *Tree, maxRounds int) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidTree)
	}
	var errs []error
	if t.Root.WinMarker() {
		errs = append(errs, fmt.Errorf("%s: opening guess is empty", RootKey))
	}
	checkBranch(t.Root, RootKey, "", &errs)

	if d := depth(t.Root); maxRounds > 0 && d > maxRounds {
		errs = append(errs, fmt.Errorf("tree needs %d guesses, limit is %d", d, maxRounds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTree, errors.Join(errs...))
	}
	return nil
}

func checkBranch(b Branch, path string, code feedback.Code, errs *[]error) {
	if b.WinMarker() {
		if code != "" && !code.Solved() {
			*errs = append(*errs, fmt.Errorf("%s: empty guess under non-winning feedback", path))
		}
		if b.Next.Len() > 0 {
			*errs = append(*errs, fmt.Errorf("%s: win marker has a subtree", path))
		}
		return
	}
	if code.Solved() {
		*errs = append(*errs, fmt.Errorf("%s: guess %q follows all-green feedback", path, b.Guess))
	}
	if !isWord(b.Guess) {
		*errs = append(*errs, fmt.Errorf("%s: guess %q is not a %d-letter word", path, b.Guess, feedback.Length))
	}
	for _, c := range b.Next.Codes() {
		next, _ := b.Next.Branch(c)
		checkBranch(next, path+"/"+string(c), c, errs)
	}
}

// Inspect walks t and returns its Stats.
func Inspect(t *Tree) Stats {
	var s Stats
	s.Depth = depth(t.Root)
	count(t.Root, &s)
	return s
}

func count(b Branch, s *Stats) {
	if b.WinMarker() {
		return
	}
	s.Guesses++
	if b.Next.Terminal() {
		s.Terminal++
	}
	for _, c := range b.Next.Codes() {
		next, _ := b.Next.Branch(c)
		count(next, s)
	}
}

func depth(b Branch) int {
	if b.WinMarker() {
		return 0
	}
	deepest := 0
	for _, c := range b.Next.Codes() {
		next, _ := b.Next.Branch(c)
		if d := depth(next); d > deepest {
			deepest = d
		}
	}
	return 1 + deepest
}

func isWord(s string) bool {
	if len(s) != feedback.Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20 // fold ASCII upper to lower
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
