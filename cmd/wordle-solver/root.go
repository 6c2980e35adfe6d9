package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

// app carries settings shared by every subcommand. Flags override the
// environment (see config.Config).
type app struct {
	cfg config.Config

	treeFile  string
	logLevel  string
	maxRounds int
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "wordle-solver",
		Short: "Solve Wordle by walking a precomputed decision tree",
		Long: `wordle-solver suggests guesses from a precomputed decision tree.

Each round it proposes a word; you enter the colours the game showed
(G=Green, Y=Yellow, B=Black) and it follows the matching branch.

The embedded tree is used unless --tree (or SOLVER_TREE_FILE) names a
.json or .yaml tree file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.treeFile, "tree", "", "decision tree file, .json or .yaml (default: embedded tree)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.IntVar(&a.maxRounds, "max-rounds", 0, "guesses allowed per game (default 6)")

	cmd.AddCommand(
		newPlayCmd(a),
		newTrialCmd(a),
		newValidateCmd(a),
		newExportCmd(a),
		newDailyCmd(a),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.treeFile != "" {
		cfg.TreeFile = a.treeFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("max-rounds") {
		if a.maxRounds <= 0 {
			return fmt.Errorf("--max-rounds must be positive, got %d", a.maxRounds)
		}
		cfg.MaxRounds = a.maxRounds
	}
	cfg.LogPretty = true
	config.SetupLoggingTo(cmd.ErrOrStderr(), cfg)
	a.cfg = cfg
	return nil
}

func (a *app) loadTree() (*tree.Tree, error) {
	t, err := assets.ResolveTree(a.cfg.TreeFile)
	if err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	return t, nil
}
