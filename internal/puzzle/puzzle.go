// Package puzzle reads Sudoku puzzles from text: nine lines of nine
// cells each, or all 81 cells on one line. '1'-'9' are clues; ' ', '.',
// and '0' are blanks.
package puzzle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

// ErrBadFormat is returned when the input is not one of the two
// supported shapes.
var ErrBadFormat = errors.New("malformed puzzle")

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '.' || ch == '0'
}

// Parse decodes a puzzle from r into a fresh board. A clue that repeats
// a value within its row, column, or quadrant fails the parse with
// board.ErrIllegalMove in the chain.
func Parse(r io.Reader) (*board.Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString decodes a puzzle from s. See Parse.
func ParseString(s string) (*board.Board, error) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	lines := strings.Split(s, "\n")

	switch {
	case len(lines) == 1 && len(lines[0]) == board.CellCount:
		return parseCells(lines[0])
	case len(lines) == board.Size:
		var sb strings.Builder
		sb.Grow(board.CellCount)
		for i, line := range lines {
			if len(line) != board.Size {
				return nil, fmt.Errorf("%w: line %d holds %d cells, want %d",
					ErrBadFormat, i+1, len(line), board.Size)
			}
			sb.WriteString(line)
		}
		return parseCells(sb.String())
	default:
		return nil, fmt.Errorf("%w: want %d lines of %d cells or one line of %d",
			ErrBadFormat, board.Size, board.Size, board.CellCount)
	}
}

// parseCells places 81 row-major cell characters onto a fresh board.
func parseCells(cells string) (*board.Board, error) {
	b := board.New()
	for i := 0; i < board.CellCount; i++ {
		ch := cells[i]
		if isBlank(ch) {
			continue
		}
		x, y := board.Coords(i)
		if ch < '1' || ch > '9' {
			return nil, fmt.Errorf("%w: cell (%d, %d) holds %q", ErrBadFormat, x, y, ch)
		}
		if err := b.Place(x, y, board.Value(ch-'1')); err != nil {
			return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
		}
	}
	return b, nil
}

// Load reads and parses the puzzle file at path.
func Load(path string) (*board.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}
