package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GabrielTofvesson/sudoku/internal/board"
	"github.com/GabrielTofvesson/sudoku/internal/puzzle"
	"github.com/GabrielTofvesson/sudoku/internal/solver"
)

var (
	benchEngine        string
	benchHiddenSingles bool
	benchProfile       bool
)

func init() {
	benchCmd := &cobra.Command{
		Use:   "bench <file>",
		Short: "Solve a corpus of puzzles and report timings",
		Long: `Solve every puzzle in a corpus file, one 81-character puzzle per
line, and report aggregate statistics. Lines of any other length are
skipped.

Examples:
  sudoku bench 17_clue.txt
  sudoku bench --engine sat 17_clue.txt
  sudoku bench --profile 17_clue.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runBench,
	}

	benchCmd.Flags().StringVar(&benchEngine, "engine", "backtrack", "Solving engine: backtrack or sat")
	benchCmd.Flags().BoolVar(&benchHiddenSingles, "hidden-singles", false, "Resolve hidden singles between forced sweeps")
	benchCmd.Flags().BoolVar(&benchProfile, "profile", false, "Write a CPU profile for the run")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if benchProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	var (
		solved, failed int
		guesses        int
		total          time.Duration
		slowest        time.Duration
		slowestLine    int
	)

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if len(text) != board.CellCount {
			continue
		}

		b, err := puzzle.ParseString(text)
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("skipping unreadable puzzle")
			failed++
			continue
		}

		start := time.Now()
		_, stats, err := benchSolve(b)
		elapsed := time.Since(start)

		total += elapsed
		guesses += stats.Guesses
		if elapsed > slowest {
			slowest, slowestLine = elapsed, line
		}
		if err != nil {
			log.Warn().Int("line", line).Err(err).Msg("puzzle not solved")
			failed++
			continue
		}
		solved++
		log.Debug().Int("line", line).Dur("elapsed", elapsed).Int("guesses", stats.Guesses).Msg("solved")
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	ran := solved + failed
	if ran == 0 {
		return fmt.Errorf("no puzzles found in %s", args[0])
	}

	fmt.Printf("solved %d/%d puzzles in %v (avg %v, slowest %v at line %d, %d guesses)\n",
		solved, ran, total, total/time.Duration(ran), slowest, slowestLine, guesses)
	return nil
}

func benchSolve(b *board.Board) (*board.Board, solver.Stats, error) {
	if benchEngine == "sat" {
		solved, err := solver.SolveSAT(b)
		return solved, solver.Stats{}, err
	}
	s := solver.New(b, &solver.Options{HiddenSingles: benchHiddenSingles})
	solved, err := s.Solve()
	return solved, s.Stats(), err
}
