// Package render draws boards as bordered text grids for terminals.
package render

import (
	"strings"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

// ANSI escapes wrapping highlighted cells.
const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// Grid returns the board as a bordered 9x9 text grid with '.' for
// undecided cells.
func Grid(b *board.Board) string {
	return grid(b, nil)
}

// Diff returns the board as a bordered grid with every cell decided in b
// but not in given wrapped in ANSI red. Pass the pre-solve board as
// given to highlight what the solver filled in.
func Diff(b, given *board.Board) string {
	return grid(b, given)
}

func grid(b, given *board.Board) string {
	const border = "+-------+-------+-------+\n"

	var sb strings.Builder
	sb.WriteString(border)
	for y := 0; y < board.Size; y++ {
		sb.WriteString("| ")
		for x := 0; x < board.Size; x++ {
			v, ok := b.ValueAt(x, y)
			switch {
			case !ok:
				sb.WriteByte('.')
			case given != nil && !given.HasValue(x, y):
				sb.WriteString(colorRed)
				sb.WriteByte(v.Digit())
				sb.WriteString(colorReset)
			default:
				sb.WriteByte(v.Digit())
			}
			if x%3 == 2 {
				sb.WriteString(" |")
			}
			if x < board.Size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
		if y%3 == 2 {
			sb.WriteString(border)
		}
	}
	return sb.String()
}
