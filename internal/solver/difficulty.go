package solver

import "github.com/GabrielTofvesson/sudoku/internal/board"

// Difficulty rates a puzzle by the search effort spent reaching its
// first solution: guessing weighs far more than forced resolution, and
// deep guess chains weigh more than shallow ones. Returns 0 for boards
// that are already solved or cannot be solved at all.
func Difficulty(b *board.Board) int {
	s := New(b, nil)
	if _, err := s.Solve(); err != nil {
		return 0
	}
	st := s.Stats()
	return st.Guesses*10 + st.MaxDepth
}
