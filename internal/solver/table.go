package solver

import "github.com/GabrielTofvesson/sudoku/internal/board"

// Board table growth constants.
const (
	defaultDepth   = 10
	depthIncrement = 3
)

// boardTable is a depth-indexed arena of working boards. The search uses
// one slot per recursion depth: all branch attempts at a depth reuse its
// slot strictly one after another, each overwriting it wholesale, so a
// handful of boards serves an arbitrarily deep search. Slots are
// pointers, so growing the table never moves a board a caller already
// holds.
type boardTable struct {
	boards []*board.Board
}

func newBoardTable() *boardTable {
	return &boardTable{}
}

// ensureDepth grows the table until a slot exists at the given depth.
// New slots hold fresh blank boards.
func (t *boardTable) ensureDepth(depth int) {
	if depth < len(t.boards) {
		return
	}
	size := len(t.boards)
	if size == 0 {
		size = defaultDepth
	}
	for size <= depth {
		size += depthIncrement
	}
	for len(t.boards) < size {
		t.boards = append(t.boards, board.New())
	}
}

// get returns the board at the given depth. The slot must exist, see
// ensureDepth.
func (t *boardTable) get(depth int) *board.Board {
	return t.boards[depth]
}

// depthCapacity returns the number of allocated slots.
func (t *boardTable) depthCapacity() int {
	return len(t.boards)
}
