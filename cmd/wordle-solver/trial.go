package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/db"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func newTrialCmd(a *app) *cobra.Command {
	var (
		answersFile string
		dbPath      string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Replay every answer through the tree and report guess statistics",
		Long: `Plays one simulated game per answer word, taking every guess from the
tree, and prints the mean, min, quartiles and max number of guesses.

With --db (or DB_PATH) the summary is also stored in the SQLite trial
history served by GET /trials. Exits non-zero when any answer fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			if answersFile == "" {
				answersFile = a.cfg.AnswersFile
			}
			list, err := words.Resolve(answersFile)
			if err != nil {
				return fmt.Errorf("load answers: %w", err)
			}

			log.Debug().Int("answers", list.Len()).Str("file", answersFile).Msg("running trial")
			s, err := trial.Run(cmd.Context(), t, list.Words(), trial.Options{MaxRounds: a.cfg.MaxRounds})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(s); err != nil {
					return err
				}
			} else {
				printSummary(out, s)
			}

			if dbPath == "" {
				dbPath = a.cfg.DBPath
			}
			if dbPath != "" {
				conn, err := db.Open(dbPath)
				if err != nil {
					return fmt.Errorf("open trial db: %w", err)
				}
				defer conn.Close()
				id, err := db.InsertTrial(cmd.Context(), conn, s)
				if err != nil {
					return fmt.Errorf("record trial: %w", err)
				}
				log.Info().Int64("id", id).Str("db", dbPath).Msg("trial recorded")
			}

			if len(s.Failures) > 0 {
				return fmt.Errorf("%d of %d answers not solved", len(s.Failures), s.Answers)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&answersFile, "answers", "", "answer list, one word per line (default: embedded list)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to record the run in")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(w io.Writer, s trial.Summary) {
	fmt.Fprintf(w, "Tree:    %s\n", s.Tree)
	fmt.Fprintf(w, "Solved:  %d/%d\n", s.Solved, s.Answers)
	fmt.Fprintf(w, "Mean:    %.3f\n", s.Mean)
	fmt.Fprintf(w, "Min:     %d\n", s.Min)
	fmt.Fprintf(w, "25th:    %g\n", s.Quartiles[0])
	fmt.Fprintf(w, "50th:    %g\n", s.Quartiles[1])
	fmt.Fprintf(w, "75th:    %g\n", s.Quartiles[2])
	fmt.Fprintf(w, "Max:     %d\n", s.Max)

	keys := make([]int, 0, len(s.Distribution))
	for k := range s.Distribution {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Guesses", "Answers"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})
	for _, k := range keys {
		table.Append([]string{strconv.Itoa(k), strconv.Itoa(s.Distribution[k])})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(s.Solved)})
	fmt.Fprintln(w)
	table.Render()
	for _, f := range s.Failures {
		fmt.Fprintf(w, "FAILED %s after %v: %s\n", f.Answer, f.Guesses, f.Reason)
	}
}
