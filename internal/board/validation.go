package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPosition is returned for coordinates outside the board.
	ErrInvalidPosition = errors.New("coordinates out of bounds")
	// ErrInvalidValue is returned for values outside [0, 9).
	ErrInvalidValue = errors.New("value out of range")
	// ErrIllegalMove is returned when a placement would repeat a value
	// within a row, column, or quadrant.
	ErrIllegalMove = errors.New("move violates Sudoku constraints")
	// ErrCellDecided is returned when an operation requires an
	// undecided cell.
	ErrCellDecided = errors.New("cell already decided")
)

// IsValid reports whether every undecided cell still has at least one
// candidate. Decided cells are consistent by construction since Place
// rejects duplicates, so this is the full feasibility check: a false
// board cannot be completed.
func (b *Board) IsValid() bool {
	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if !c.decided && c.candidates == 0 {
			return false
		}
	}
	return true
}

// validateCoords checks coordinates and returns the linear cell index.
func (b *Board) validateCoords(x, y int) (int, error) {
	if !inBounds(x, y) {
		return -1, fmt.Errorf("%w: (%d, %d) not in [0, %d)x[0, %d)",
			ErrInvalidPosition, x, y, Size, Size)
	}
	return y*Size + x, nil
}

// validateValue checks a value is within [0, 9).
func validateValue(v Value) error {
	if v >= NumValues {
		return fmt.Errorf("%w: got %d, want [0, %d)", ErrInvalidValue, v, NumValues)
	}
	return nil
}
