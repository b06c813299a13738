package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GabrielTofvesson/sudoku/internal/generator"
	"github.com/GabrielTofvesson/sudoku/internal/render"
	"github.com/GabrielTofvesson/sudoku/internal/solver"
	"github.com/GabrielTofvesson/sudoku/internal/storage"
)

var (
	genCount   int
	genClues   string
	genSeed    int64
	genUnique  bool
	genTimeout time.Duration
	genSaveDir string
)

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate Sudoku puzzles",
		Long: `Generate one or more Sudoku puzzles with a chosen number of clues.

Examples:
  sudoku gen --clues 40
  sudoku gen -n 5 --clues 30
  sudoku gen --clues 28:32 --save-dir ./puzzles`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&genCount, "number", "n", 1, "Number of puzzles to generate")
	genCmd.Flags().StringVarP(&genClues, "clues", "c", fmt.Sprintf("%d", generator.DefaultClueCount), "Number of clues 17-80 or range like 28:32")
	genCmd.Flags().Int64Var(&genSeed, "seed", 0, "Seed for reproducible puzzles (0 = random)")
	genCmd.Flags().BoolVar(&genUnique, "unique", true, "Only emit puzzles with a unique solution")
	genCmd.Flags().DurationVar(&genTimeout, "timeout", 10*time.Second, "Generation timeout per puzzle")
	genCmd.Flags().StringVar(&genSaveDir, "save-dir", "", "Directory to save generated puzzles as JSON")

	rootCmd.AddCommand(genCmd)
}

// parseClueCountRange parses a clue count string which can be:
// - A single number: "32"
// - A range: "28:32"
// Returns min, max, and an error
func parseClueCountRange(s string) (min, max int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) == 1 {
		val, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid clue count: %w", err)
		}
		return val, val, nil
	} else if len(parts) == 2 {
		minVal, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid clue count min: %w", err)
		}
		maxVal, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid clue count max: %w", err)
		}
		if minVal > maxVal {
			return 0, 0, fmt.Errorf("clue count min (%d) cannot be greater than max (%d)", minVal, maxVal)
		}
		return minVal, maxVal, nil
	}
	return 0, 0, fmt.Errorf("invalid clue count format: %s (use format like '32' or '28:32')", s)
}

func runGen(cmd *cobra.Command, args []string) error {
	minClues, maxClues, err := parseClueCountRange(genClues)
	if err != nil {
		return err
	}
	if minClues < generator.MinValidClueCount || minClues > generator.MaxValidClueCount {
		return fmt.Errorf("clue count min (%d) must be between %d and %d", minClues, generator.MinValidClueCount, generator.MaxValidClueCount)
	}
	if maxClues < generator.MinValidClueCount || maxClues > generator.MaxValidClueCount {
		return fmt.Errorf("clue count max (%d) must be between %d and %d", maxClues, generator.MinValidClueCount, generator.MaxValidClueCount)
	}

	var store *storage.Store
	if genSaveDir != "" {
		store, err = storage.New(genSaveDir)
		if err != nil {
			return err
		}
	}

	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < genCount; i++ {
		// Pick a clue count for this puzzle when a range was given.
		clues := minClues
		if maxClues > minClues {
			clues = minClues + rng.Intn(maxClues-minClues+1)
		}

		opts := generator.DefaultOptions(clues)
		opts.Timeout = genTimeout
		opts.Seed = rng.Int63()
		opts.EnsureUnique = genUnique

		puzzle, solution, err := generator.New(opts).Generate()
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		difficulty := solver.Difficulty(puzzle)
		fmt.Printf("Puzzle #%d (%d clues, difficulty %d):\n", i+1, puzzle.ClueCount(), difficulty)
		fmt.Println(render.Grid(puzzle))
		if verbosity > 0 {
			fmt.Println("Solution:")
			fmt.Println(render.Grid(solution))
		}

		if store != nil {
			rec := &storage.Puzzle{
				Clues:      puzzle.ClueCount(),
				Difficulty: difficulty,
				Puzzle:     puzzle.String(),
				Solution:   solution.String(),
			}
			if err := store.Save(context.Background(), rec); err != nil {
				return fmt.Errorf("saving puzzle: %w", err)
			}
			log.Info().Str("id", rec.ID).Str("dir", genSaveDir).Msg("puzzle saved")
		}
	}

	return nil
}
