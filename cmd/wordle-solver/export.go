package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the decision tree as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := tree.ParseFormat(format)
			if err != nil {
				return err
			}
			t, err := a.loadTree()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return tree.Encode(cmd.OutOrStdout(), t, f)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := tree.Encode(file, t, f); err != nil {
				_ = file.Close()
				return err
			}
			return file.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
