package solver

import (
	"errors"
	"testing"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

func TestSolveSATClassic(t *testing.T) {
	given := parseBoard(t, classicPuzzle)
	snapshot := *given

	solved, err := SolveSAT(given)
	if err != nil {
		t.Fatalf("SolveSAT() = %v", err)
	}
	if got := solved.String(); got != classicSolution {
		t.Errorf("SolveSAT() = %q, want %q", got, classicSolution)
	}
	validateSolution(t, solved)

	if *given != snapshot {
		t.Error("SolveSAT mutated the input board")
	}
}

func TestSolveSATBlank(t *testing.T) {
	solved, err := SolveSAT(board.New())
	if err != nil {
		t.Fatalf("SolveSAT() = %v", err)
	}
	validateSolution(t, solved)
}

func TestSolveSATSolvedInput(t *testing.T) {
	solved, err := SolveSAT(parseBoard(t, classicSolution))
	if err != nil {
		t.Fatalf("SolveSAT() = %v", err)
	}
	if solved.String() != classicSolution {
		t.Error("solved board changed")
	}
}

func TestSolveSATUnsolvable(t *testing.T) {
	if _, err := SolveSAT(unsolvableBoard(t)); !errors.Is(err, ErrNoSolution) {
		t.Errorf("SolveSAT() = %v, want ErrNoSolution", err)
	}
}

func TestSolveSATInvalid(t *testing.T) {
	b := board.New()
	for v := board.Value(0); v < board.NumValues; v++ {
		if err := b.Unmark(4, 4, v); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := SolveSAT(b); !errors.Is(err, ErrInvalidPuzzle) {
		t.Errorf("SolveSAT() = %v, want ErrInvalidPuzzle", err)
	}
}
