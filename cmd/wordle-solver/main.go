// Command wordle-solver is the terminal front end for the decision-tree
// solver: interactive play, benchmarking, validation and export.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
