// internal/trial/trial.go
//
// Benchmark: replays every answer word through the decision tree.
// Responsibilities:
//   - Play one simulated game per answer, taking guesses from a single walker
//     that is Reset between answers.
//   - Collect the number of guesses each answer needed.
//   - Summarise: mean, min, max, quartiles, distribution, failures.
//
// A failure (no guess for some feedback, or the row limit reached) is recorded
// against the answer and the run carries on; only cancellation aborts a run.

package trial

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

// Options tune a trial run.
type Options struct {
	MaxRounds int // guesses allowed per game; game.DefaultRows when zero
}

// Failure records an answer the tree could not solve.
type Failure struct {
	Answer  string   `json:"answer"`
	Guesses []string `json:"guesses"`
	Reason  string   `json:"reason"`
}

// Summary describes a finished run.
type Summary struct {
	Tree         string        `json:"tree"` // tree fingerprint
	Answers      int           `json:"answers"`
	Solved       int           `json:"solved"`
	Mean         float64       `json:"mean"`
	Min          int           `json:"min"`
	Max          int           `json:"max"`
	Quartiles    [3]float64    `json:"quartiles"`
	Distribution map[int]int   `json:"distribution"` // guesses → answers
	Failures     []Failure     `json:"failures,omitempty"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Run replays answers through t.
func Run(ctx context.Context, t *tree.Tree, answers []string, opts Options) (Summary, error) {
	start := time.Now()
	rows := opts.MaxRounds
	if rows <= 0 {
		rows = game.DefaultRows
	}

	s := Summary{
		Tree:         tree.Fingerprint(t),
		Answers:      len(answers),
		Distribution: make(map[int]int),
	}
	counts := make([]int, 0, len(answers))
	w := walker.New(t)

	for _, answer := range answers {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("trial cancelled after %d answers: %w", len(counts)+len(s.Failures), err)
		}
		w.Reset()
		n, fail := play(w, game.NewWithRows(answer, rows))
		if fail != nil {
			log.Debug().Str("answer", answer).Str("reason", fail.Reason).Msg("trial failure")
			s.Failures = append(s.Failures, *fail)
			continue
		}
		counts = append(counts, n)
		s.Distribution[n]++
	}

	s.Solved = len(counts)
	if len(counts) > 0 {
		sort.Ints(counts)
		total := 0
		for _, c := range counts {
			total += c
		}
		s.Mean = float64(total) / float64(len(counts))
		s.Min, s.Max = counts[0], counts[len(counts)-1]
		s.Quartiles = quartiles(counts)
	}
	s.Elapsed = time.Since(start)
	return s, nil
}

// Solve plays a single answer through t and returns the finished game.
// A non-nil Failure means the tree did not reach the answer.
func Solve(t *tree.Tree, answer string, rows int) (*game.Game, *Failure) {
	g := game.NewWithRows(answer, rows)
	_, fail := play(walker.New(t), g)
	return g, fail
}

// play runs one game to completion and returns the number of guesses used.
func play(w *walker.Walker, g *game.Game) (int, *Failure) {
	fail := func(reason string) (int, *Failure) {
		return 0, &Failure{Answer: g.Answer, Guesses: g.Guesses, Reason: reason}
	}
	for {
		guess, err := w.NextGuess()
		if err != nil {
			return fail(err.Error())
		}
		code, st, err := g.ApplyGuess(guess.Word)
		if err != nil {
			return fail(err.Error())
		}
		switch st {
		case game.StateWon:
			return len(g.Guesses), nil
		case game.StateLost:
			return fail(fmt.Sprintf("answer not found within %d guesses", g.Rows))
		}
		w.RecordFeedback(code)
	}
}

// quartiles returns the 25th, 50th and 75th percentiles of sorted data using
// the exclusive method: position i*(n+1)/4 with linear interpolation, the
// index clamped so the two neighbours always exist.
func quartiles(sorted []int) [3]float64 {
	n := len(sorted)
	if n == 1 {
		v := float64(sorted[0])
		return [3]float64{v, v, v}
	}
	var out [3]float64
	m := n + 1
	for i := 1; i <= 3; i++ {
		j := i * m / 4
		if j < 1 {
			j = 1
		} else if j > n-1 {
			j = n - 1
		}
		delta := i*m - j*4
		out[i-1] = (float64(sorted[j-1])*float64(4-delta) + float64(sorted[j])*float64(delta)) / 4
	}
	return out
}
