package solver

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

// SolveSAT solves the board through a CNF encoding handed to a SAT
// solver: one variable per (x, y, value) triple, clauses making every
// cell hold exactly one value and every row, column, and quadrant hold
// each value at most once, plus a unit clause per given.
func SolveSAT(b *board.Board) (*board.Board, error) {
	if !b.IsValid() {
		return nil, ErrInvalidPuzzle
	}

	g := gini.New()
	lit := func(x, y int, v board.Value) z.Lit {
		return z.Var(int(v) + x*board.NumValues + y*board.NumValues*board.Size + 1).Pos()
	}

	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			// At least one value per cell.
			for v := board.Value(0); v < board.NumValues; v++ {
				g.Add(lit(x, y, v))
			}
			g.Add(0)
			// At most one value per cell.
			for v := board.Value(0); v < board.NumValues; v++ {
				for w := v + 1; w < board.NumValues; w++ {
					g.Add(lit(x, y, v).Not())
					g.Add(lit(x, y, w).Not())
					g.Add(0)
				}
			}
		}
	}

	// Each value at most once per row and per column.
	for v := board.Value(0); v < board.NumValues; v++ {
		for i := 0; i < board.Size; i++ {
			for j := 0; j < board.Size; j++ {
				for k := j + 1; k < board.Size; k++ {
					g.Add(lit(j, i, v).Not())
					g.Add(lit(k, i, v).Not())
					g.Add(0)

					g.Add(lit(i, j, v).Not())
					g.Add(lit(i, k, v).Not())
					g.Add(0)
				}
			}
		}
	}

	// Each value at most once per quadrant.
	for v := board.Value(0); v < board.NumValues; v++ {
		for q := 0; q < board.Size; q++ {
			qx, qy := (q%3)*3, (q/3)*3
			for j := 0; j < board.Size; j++ {
				for k := j + 1; k < board.Size; k++ {
					g.Add(lit(qx+j%3, qy+j/3, v).Not())
					g.Add(lit(qx+k%3, qy+k/3, v).Not())
					g.Add(0)
				}
			}
		}
	}

	// Givens become unit clauses.
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			if v, ok := b.ValueAt(x, y); ok {
				g.Add(lit(x, y, v))
				g.Add(0)
			}
		}
	}

	if g.Solve() != 1 {
		return nil, ErrNoSolution
	}

	solved := board.New()
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			for v := board.Value(0); v < board.NumValues; v++ {
				if !g.Value(lit(x, y, v)) {
					continue
				}
				if err := solved.Place(x, y, v); err != nil {
					return nil, fmt.Errorf("decode model: %w", err)
				}
				break
			}
		}
	}
	if !solved.Solved() {
		return nil, fmt.Errorf("decode model: %w", ErrNoSolution)
	}
	return solved, nil
}
