// Package cmd wires the sudoku CLI commands together.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "sudoku",
	Short: "Solve, generate, and serve Sudoku puzzles",
	Long: `A Sudoku toolbox: solve puzzles from files, generate new ones,
benchmark the solver over a corpus, and serve everything as an HTTP API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		switch {
		case verbosity <= 0:
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case verbosity == 1:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
