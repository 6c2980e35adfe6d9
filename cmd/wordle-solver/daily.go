package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newDailyCmd(a *app) *cobra.Command {
	var (
		date string
		salt string
	)
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Pick the day's answer and show how the tree solves it",
		Long: `Selects the puzzle of the day from the answer list (HMAC of the date,
so every run agrees), then replays it through the tree round by round.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day := time.Now()
			if date != "" {
				d, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				day = d
			}
			list, err := words.Resolve(a.cfg.AnswersFile)
			if err != nil {
				return fmt.Errorf("load answers: %w", err)
			}
			t, err := a.loadTree()
			if err != nil {
				return err
			}

			p := daily.For(day, salt, list)
			g, fail := trial.Solve(t, p.Answer, a.cfg.MaxRounds)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Puzzle %s (#%d)\n", p.Date, p.Index)
			for i, guess := range g.Guesses {
				fmt.Fprintf(out, "  %d. %s  %s\n", i+1, guess, g.Feedbacks[i])
			}
			if fail != nil {
				return fmt.Errorf("tree did not solve %s: %s", p.Answer, fail.Reason)
			}
			fmt.Fprintf(out, "Solved in %d.\n", len(g.Guesses))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "puzzle date, YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().StringVar(&salt, "salt", "", "selection salt (default: "+daily.DefaultSalt+")")
	return cmd
}
