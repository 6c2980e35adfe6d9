package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

const feedbackPrompt = "NOTE! Please input guess feedback as a 5-letter string where G=Green, Y=Yellow, B=Black(grey)\n" +
	"As an example, if the game reads (from left to right) Green, Yellow, Black, Black, Black -> enter GYBBB"

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Solve a puzzle interactively by entering the game's feedback",
		Long: `Prints the next guess, then reads the feedback the game showed for it.
Type "reset" to start over or "quit" to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), solver.New(walker.New(t), false))
		},
	}
}

// play runs the prompt loop until the puzzle is won, the next guess is
// known to win, the user quits, or input ends.
func play(in io.Reader, out io.Writer, s *solver.Session) error {
	fmt.Fprintln(out, "----------------")
	fmt.Fprintln(out, feedbackPrompt)
	fmt.Fprintln(out, `Type "reset" to start over or "quit" to exit.`)
	fmt.Fprintln(out, "----------------")

	sc := bufio.NewScanner(in)
	o := s.Start()
	show(out, o)
	for o.Status != solver.StatusWon && o.Status != solver.StatusWinningNext {
		fmt.Fprint(out, "Please enter the game feedback: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "reset":
			fmt.Fprintln(out, "Starting over.")
			o = s.Reset()
		default:
			o = s.Submit(line)
		}
		show(out, o)
	}
	return nil
}

func show(out io.Writer, o solver.Outcome) {
	switch o.Status {
	case solver.StatusOptimal:
		fmt.Fprintf(out, "%s %s\n", o.Message, o.Guess)
	case solver.StatusWinningNext:
		fmt.Fprintf(out, "Guess %d: %s\n%s\n", o.Round, o.Guess, o.Message)
	default:
		fmt.Fprintln(out, o.Message)
	}
}
