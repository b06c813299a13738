package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GabrielTofvesson/sudoku/internal/board"
	"github.com/GabrielTofvesson/sudoku/internal/puzzle"
	"github.com/GabrielTofvesson/sudoku/internal/render"
	"github.com/GabrielTofvesson/sudoku/internal/solver"
)

var (
	solveEngine        string
	solveTimeout       time.Duration
	solveHiddenSingles bool
	solveNoColor       bool
	solveProfile       bool
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve a Sudoku puzzle from a file",
		Long: `Solve a Sudoku puzzle read from a file.

The file holds either nine lines of nine cells each or all 81 cells on
one line; '1'-'9' are clues, spaces, dots, and zeros are blanks.

Examples:
  sudoku solve puzzle.txt
  sudoku solve --engine sat puzzle.txt
  sudoku solve --timeout 5s --hidden-singles puzzle.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().StringVar(&solveEngine, "engine", "backtrack", "Solving engine: backtrack or sat")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Abort the search after this long (0 = no limit)")
	solveCmd.Flags().BoolVar(&solveHiddenSingles, "hidden-singles", false, "Resolve hidden singles between forced sweeps")
	solveCmd.Flags().BoolVar(&solveNoColor, "no-color", false, "Disable ANSI colors in output")
	solveCmd.Flags().BoolVar(&solveProfile, "profile", false, "Write a CPU profile for the run")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	given, err := puzzle.Load(args[0])
	if err != nil {
		return err
	}

	if solveProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if verbosity > 0 {
		fmt.Println(render.Grid(given))
	}

	start := time.Now()
	solved, stats, err := solveBoard(given)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, solver.ErrNoSolution):
		fmt.Printf("no solution (searched %v, %d guesses)\n", elapsed, stats.Guesses)
		return nil
	case errors.Is(err, solver.ErrTimeout):
		fmt.Printf("gave up after %v\n", elapsed)
		return nil
	case err != nil:
		return err
	}

	if solveNoColor {
		fmt.Println(render.Grid(solved))
	} else {
		fmt.Println(render.Diff(solved, given))
	}
	fmt.Printf("solved in %v (%d placements, %d guesses, depth %d)\n",
		elapsed, stats.Placements, stats.Guesses, stats.MaxDepth)

	log.Debug().
		Int("clues", given.ClueCount()).
		Int("placements", stats.Placements).
		Int("guesses", stats.Guesses).
		Int("maxDepth", stats.MaxDepth).
		Dur("elapsed", elapsed).
		Msg("search finished")

	return nil
}

// solveBoard dispatches to the selected engine.
func solveBoard(b *board.Board) (*board.Board, solver.Stats, error) {
	switch solveEngine {
	case "sat":
		solved, err := solver.SolveSAT(b)
		return solved, solver.Stats{}, err
	case "backtrack":
		s := solver.New(b, &solver.Options{
			Timeout:       solveTimeout,
			HiddenSingles: solveHiddenSingles,
		})
		solved, err := s.Solve()
		return solved, s.Stats(), err
	default:
		return nil, solver.Stats{}, fmt.Errorf("unknown engine %q (use backtrack or sat)", solveEngine)
	}
}
