// Package solver searches Sudoku boards for solutions by forced-cell
// resolution and speculative backtracking, with an alternative SAT
// backend.
package solver

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

var (
	// ErrNoSolution is returned when the search space is exhausted.
	ErrNoSolution = errors.New("puzzle has no solution")
	// ErrInvalidPuzzle is returned when the starting board already
	// contains a cell with no candidates.
	ErrInvalidPuzzle = errors.New("puzzle violates Sudoku constraints")
	// ErrTimeout is returned when the search context ends first.
	ErrTimeout = errors.New("solver timeout exceeded")
)

// Stats reports search effort for one solve.
type Stats struct {
	// Placements counts cells decided by the solver, forced and
	// speculative alike, including work on abandoned branches.
	Placements int
	// Guesses counts speculative placements.
	Guesses int
	// MaxDepth is the deepest recursion level reached.
	MaxDepth int
}

// Solver runs forced resolution and speculative backtracking over a
// depth-indexed table of working boards.
type Solver struct {
	// Board is the puzzle under search. Solving never mutates it.
	Board *board.Board

	options *Options
	table   *boardTable
	rng     *rand.Rand
	stats   Stats
}

// New creates a solver for the given board. The board is cloned, so the
// caller's copy stays untouched.
func New(b *board.Board, options *Options) *Solver {
	if options == nil {
		options = DefaultOptions()
	}

	s := &Solver{
		Board:   b.Clone(),
		options: options,
		table:   newBoardTable(),
	}

	if options.Randomize {
		seed := options.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	return s
}

// Stats returns search statistics for the most recent Solve or
// CountSolutions call.
func (s *Solver) Stats() Stats {
	return s.stats
}

// Solve searches for a solution and returns it as a new board.
// Returns ErrInvalidPuzzle, ErrNoSolution, or ErrTimeout on failure.
func (s *Solver) Solve() (*board.Board, error) {
	ctx, cancel := s.makeContext()
	defer cancel()
	return s.SolveContext(ctx)
}

// SolveContext is Solve bounded by the caller's context.
func (s *Solver) SolveContext(ctx context.Context) (*board.Board, error) {
	if !s.Board.IsValid() {
		return nil, ErrInvalidPuzzle
	}

	s.stats = Stats{}
	s.table.ensureDepth(0)
	root := s.table.get(0)
	s.Board.CopyTo(root)

	s.reduce(ctx, 0)

	if !root.Solved() {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, ErrNoSolution
	}
	return root.Clone(), nil
}

// CountSolutions explores the whole search space and returns the number
// of distinct solutions, capped at limit. Counting to 2 is the uniqueness
// check the generator relies on.
func (s *Solver) CountSolutions(limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}
	if !s.Board.IsValid() {
		return 0, ErrInvalidPuzzle
	}

	ctx, cancel := s.makeContext()
	defer cancel()

	s.stats = Stats{}
	s.table.ensureDepth(0)
	root := s.table.get(0)
	s.Board.CopyTo(root)

	count := 0
	s.countReduce(ctx, 0, limit, &count)
	if ctx.Err() != nil {
		return count, ErrTimeout
	}
	return count, nil
}

// reduce runs one recursion level over the board at depth: resolve every
// forced cell, then branch on a cheapest cell into depth+1, copying a
// solving branch back on success. Returns false when the level was
// abandoned on a contradiction or a done context; returning true means
// the level was explored fully, and the caller checks Solved for the
// outcome.
func (s *Solver) reduce(ctx context.Context, depth int) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	b := s.table.get(depth)

	for {
		// Forced resolution: keep placing single candidates until no
		// cell is forced anymore.
		for b.Complexity() == 1 {
			if !s.sweepForced(b) {
				return false
			}
		}

		if b.Solved() {
			return true
		}
		if !b.IsValid() {
			return false
		}

		if s.options.HiddenSingles {
			placed, ok := s.placeHiddenSingles(b)
			if !ok {
				return false
			}
			if placed {
				continue
			}
		}
		break
	}

	// Branch on the first cell in scan order with as few candidates as
	// any cell has, trying each candidate in a speculative copy one
	// depth down.
	pos := s.findBranchCell(b)
	if pos < 0 {
		return false
	}
	x, y := board.Coords(pos)

	s.table.ensureDepth(depth + 1)
	next := s.table.get(depth + 1)

	candidates := b.CandidatesAt(x, y).Values()
	if s.rng != nil {
		s.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	for _, v := range candidates {
		ok, err := b.PlaceSpeculative(next, x, y, v)
		if err != nil || !ok {
			continue
		}
		s.stats.Guesses++
		s.stats.Placements++

		if s.reduce(ctx, depth+1) && next.Solved() {
			next.CopyTo(b)
			return true
		}
		if ctx.Err() != nil {
			return false
		}
	}

	return true
}

// countReduce mirrors reduce but keeps searching past found solutions,
// accumulating their number until the limit is reached.
func (s *Solver) countReduce(ctx context.Context, depth, limit int, count *int) {
	if *count >= limit {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}

	if depth > s.stats.MaxDepth {
		s.stats.MaxDepth = depth
	}

	b := s.table.get(depth)

	for {
		for b.Complexity() == 1 {
			if !s.sweepForced(b) {
				return
			}
		}

		if b.Solved() {
			*count++
			return
		}
		if !b.IsValid() {
			return
		}

		if s.options.HiddenSingles {
			placed, ok := s.placeHiddenSingles(b)
			if !ok {
				return
			}
			if placed {
				continue
			}
		}
		break
	}

	pos := s.findBranchCell(b)
	if pos < 0 {
		return
	}
	x, y := board.Coords(pos)

	s.table.ensureDepth(depth + 1)
	next := s.table.get(depth + 1)

	for _, v := range b.CandidatesAt(x, y).Values() {
		if *count >= limit {
			return
		}
		ok, err := b.PlaceSpeculative(next, x, y, v)
		if err != nil || !ok {
			continue
		}
		s.stats.Guesses++
		s.stats.Placements++
		s.countReduce(ctx, depth+1, limit, count)
	}
}

// sweepForced walks the board once, placing the remaining candidate of
// every forced cell. Returns false when the board turns out
// contradictory.
func (s *Solver) sweepForced(b *board.Board) bool {
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			if b.HasValue(x, y) || b.CellComplexity(x, y) != 1 {
				continue
			}
			v, ok := b.CandidatesAt(x, y).Single()
			if !ok {
				return false
			}
			if err := b.Place(x, y, v); err != nil {
				return false
			}
			s.stats.Placements++
		}
	}
	return true
}

// findBranchCell returns the first cell in scan order whose candidate
// count equals the board complexity, or -1 when every cell is decided.
func (s *Solver) findBranchCell(b *board.Board) int {
	target := b.Complexity()
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			if !b.HasValue(x, y) && b.CellComplexity(x, y) == target {
				return board.Index(x, y)
			}
		}
	}
	return -1
}

// placeHiddenSingles places every value that has exactly one possible
// cell left within some row, column, or quadrant. ok is false when a
// region can no longer host one of its missing values, which means the
// board cannot be completed.
func (s *Solver) placeHiddenSingles(b *board.Board) (placed, ok bool) {
	for i := 0; i < board.Size; i++ {
		for _, cells := range [3][board.Size]int{rowCells(i), colCells(i), quadCells(i)} {
			p, regionOK := s.hiddenSinglesIn(b, cells)
			if !regionOK {
				return placed, false
			}
			placed = placed || p
		}
	}
	return placed, true
}

// hiddenSinglesIn scans one region for values with exactly one remaining
// candidate cell and places them.
func (s *Solver) hiddenSinglesIn(b *board.Board, cells [board.Size]int) (placed, ok bool) {
	for v := board.Value(0); v < board.NumValues; v++ {
		spots := 0
		last := -1
		used := false
		for _, pos := range cells {
			x, y := board.Coords(pos)
			if val, decided := b.ValueAt(x, y); decided {
				if val == v {
					used = true
					break
				}
				continue
			}
			if b.CandidatesAt(x, y).Has(v) {
				spots++
				last = pos
			}
		}
		if used {
			continue
		}
		if spots == 0 {
			return placed, false
		}
		if spots == 1 {
			x, y := board.Coords(last)
			if err := b.Place(x, y, v); err != nil {
				return placed, false
			}
			s.stats.Placements++
			placed = true
		}
	}
	return placed, true
}

func rowCells(i int) [board.Size]int {
	var cells [board.Size]int
	for x := 0; x < board.Size; x++ {
		cells[x] = board.Index(x, i)
	}
	return cells
}

func colCells(i int) [board.Size]int {
	var cells [board.Size]int
	for y := 0; y < board.Size; y++ {
		cells[y] = board.Index(i, y)
	}
	return cells
}

func quadCells(i int) [board.Size]int {
	var cells [board.Size]int
	qx, qy := (i%3)*3, (i/3)*3
	for j := 0; j < board.Size; j++ {
		cells[j] = board.Index(qx+j%3, qy+j/3)
	}
	return cells
}

// makeContext builds the search context from the timeout option.
func (s *Solver) makeContext() (context.Context, context.CancelFunc) {
	if s.options.Timeout > 0 {
		return context.WithTimeout(context.Background(), s.options.Timeout)
	}
	return context.WithCancel(context.Background())
}
