// Package generator creates Sudoku puzzles by digging clues out of a
// complete solution grid.
package generator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/GabrielTofvesson/sudoku/internal/board"
	"github.com/GabrielTofvesson/sudoku/internal/solver"
)

const (
	// MinValidClueCount is the fewest clues a proper puzzle can have.
	MinValidClueCount = 17
	// MaxValidClueCount is the most clues worth calling a puzzle.
	MaxValidClueCount = 80
	// DefaultClueCount gives moderate difficulty.
	DefaultClueCount = 32
)

var (
	ErrGenerationFailed = errors.New("failed to generate valid puzzle")
	ErrInvalidClueCount = errors.New("clue count must be between 17 and 80")
	ErrDiggingFailed    = errors.New("failed to remove proper number of clues")
)

// Generator creates Sudoku puzzles.
type Generator struct {
	options *Options
	rng     *rand.Rand
}

// New creates a puzzle generator with the given options.
func New(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions(DefaultClueCount)
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options: options,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Generate creates a new Sudoku puzzle.
// Returns the puzzle and its full solution, or an error when no valid
// puzzle comes together within the timeout.
func (g *Generator) Generate() (puzzle, solution *board.Board, err error) {
	if g.options.ClueCount < MinValidClueCount || g.options.ClueCount > MaxValidClueCount {
		return nil, nil, ErrInvalidClueCount
	}

	start := time.Now()
	for {
		if time.Since(start) >= g.options.Timeout {
			return nil, nil, ErrGenerationFailed
		}

		solution, err = g.generateSolution()
		if err != nil {
			continue
		}

		puzzle, err = g.removeCells(solution)
		if err != nil {
			continue
		}

		return puzzle, solution, nil
	}
}

// generateSolution creates a complete valid board. The three diagonal
// quadrants share no row, column, or quadrant constraints, so each is
// seeded with an independent shuffle, and a randomized solve fills in
// the rest.
func (g *Generator) generateSolution() (*board.Board, error) {
	b := board.New()
	for _, base := range []int{0, 3, 6} {
		for i, v := range g.rng.Perm(board.NumValues) {
			if err := b.Place(base+i%3, base+i/3, board.Value(v)); err != nil {
				return nil, err
			}
		}
	}

	s := solver.New(b, &solver.Options{
		Randomize:     true,
		Seed:          g.rng.Int63(),
		Timeout:       g.options.Timeout,
		HiddenSingles: true,
	})
	return s.Solve()
}

// removeCells digs clues out of a complete board in random order until
// the target clue count remains, restoring any removal that breaks
// solution uniqueness.
func (g *Generator) removeCells(solution *board.Board) (*board.Board, error) {
	puzzle := solution.Clone()
	cellsToRemove := board.CellCount - g.options.ClueCount

	cellsRemoved := 0
	for _, pos := range g.rng.Perm(board.CellCount) {
		if cellsRemoved >= cellsToRemove {
			break
		}

		x, y := board.Coords(pos)
		v, ok := puzzle.ValueAt(x, y)
		if !ok {
			continue
		}

		if err := puzzle.Clear(x, y); err != nil {
			return nil, err
		}
		cellsRemoved++

		if g.options.EnsureUnique && !g.hasUniqueSolution(puzzle) {
			if err := puzzle.Place(x, y, v); err != nil {
				return nil, err
			}
			cellsRemoved--
		}
	}

	if cellsRemoved != cellsToRemove {
		return nil, ErrDiggingFailed
	}
	return puzzle, nil
}

// hasUniqueSolution checks that the puzzle has exactly one solution.
func (g *Generator) hasUniqueSolution(puzzle *board.Board) bool {
	s := solver.New(puzzle, &solver.Options{
		Timeout:       g.options.Timeout,
		HiddenSingles: true,
	})
	n, err := s.CountSolutions(2)
	return err == nil && n == 1
}

// GenerateWithClueCount generates a single puzzle with default options
// and the given clue count.
func GenerateWithClueCount(clueCount int) (puzzle, solution *board.Board, err error) {
	return New(DefaultOptions(clueCount)).Generate()
}
