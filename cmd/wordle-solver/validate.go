package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the decision tree for consistency",
		Long: `Checks that every guess is a 5-letter word, win markers only follow
all-green feedback, and no path is longer than --max-rounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			if err := tree.Validate(t, a.cfg.MaxRounds); err != nil {
				return err
			}
			st := tree.Inspect(t)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tree:     %s\n", tree.Fingerprint(t))
			fmt.Fprintf(out, "Opening:  %s\n", t.Root.Guess)
			fmt.Fprintf(out, "Depth:    %d\n", st.Depth)
			fmt.Fprintf(out, "Guesses:  %d\n", st.Guesses)
			fmt.Fprintf(out, "Terminal: %d\n", st.Terminal)
			fmt.Fprintln(out, "Tree is valid!")
			return nil
		},
	}
}
