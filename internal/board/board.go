// Package board implements the Sudoku grid: 81 cells that are either
// decided or carry a candidate set, plus per-row, per-column, and
// per-quadrant constraint metadata kept consistent on every mutation.
package board

import (
	"fmt"
	"strings"
)

// cell is one position of the grid: either a decided value or a set of
// candidate values with its cached population count. The decided flag
// discriminates which half is meaningful.
type cell struct {
	decided    bool
	value      Value
	candidates ValueSet
	complexity uint8
}

func blankCell() cell {
	return cell{candidates: AllValues, complexity: NumValues}
}

// Board is a 9x9 Sudoku grid.
//
// The board complexity is the minimum candidate count among undecided
// cells: 9 on a blank board, 1 when a forced cell exists, and 0 when
// either every cell is decided or some undecided cell has run out of
// candidates. Solved and IsValid tell the two zero cases apart. Every
// mutating method leaves the complexity freshly computed.
type Board struct {
	cells [CellCount]cell

	rows  [Size]RegionMeta
	cols  [Size]RegionMeta
	quads [Size]RegionMeta

	complexity uint8

	// emptyCount tracks undecided cells for quick completion checks.
	emptyCount int
}

// New creates a blank board.
func New() *Board {
	b := &Board{}
	b.Init()
	return b
}

// Init resets the board to the blank state: every cell undecided with
// all nine candidates, every region's used set empty.
func (b *Board) Init() {
	for pos := 0; pos < CellCount; pos++ {
		b.cells[pos] = blankCell()
	}
	for i := 0; i < Size; i++ {
		b.rows[i].Clear()
		b.cols[i].Clear()
		b.quads[i].Clear()
	}
	b.complexity = NumValues
	b.emptyCount = CellCount
}

// Clone creates an independent copy of the board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// CopyTo overwrites dst with a copy of the board. The board holds no
// reference types, so a struct assignment is a full deep copy.
func (b *Board) CopyTo(dst *Board) {
	*dst = *b
}

// CanPlace reports whether value v may be placed at (x, y): none of the
// cell's row, column, or quadrant may have v marked used. Only region
// metadata is consulted; Place additionally requires the target cell to
// be undecided.
func (b *Board) CanPlace(x, y int, v Value) (bool, error) {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return false, err
	}
	if err := validateValue(v); err != nil {
		return false, err
	}
	return b.canPlace(pos, v), nil
}

func (b *Board) canPlace(pos int, v Value) bool {
	return !b.rows[posToY[pos]].HasUsed(v) &&
		!b.cols[posToX[pos]].HasUsed(v) &&
		!b.quads[posToQuad[pos]].HasUsed(v)
}

// Place decides (x, y) to hold value v. It is the single mutating entry
// point for both clue loading and solving: the three region records mark
// v used, every undecided peer in the cell's row, column, and quadrant
// drops v from its candidates, and the board complexity is recomputed.
//
// Placing onto a decided cell returns ErrCellDecided; a placement
// rejected by CanPlace returns ErrIllegalMove. Neither mutates the
// board.
func (b *Board) Place(x, y int, v Value) error {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return err
	}
	if err := validateValue(v); err != nil {
		return err
	}
	if b.cells[pos].decided {
		return fmt.Errorf("%w: (%d, %d) already holds %d", ErrCellDecided, x, y, b.cells[pos].value+1)
	}
	if !b.canPlace(pos, v) {
		return fmt.Errorf("%w: value %d at (%d, %d)", ErrIllegalMove, v+1, x, y)
	}
	b.place(pos, v)
	return nil
}

// place assumes pos and v are valid and the placement is legal.
func (b *Board) place(pos int, v Value) {
	b.cells[pos] = cell{decided: true, value: v}
	b.emptyCount--

	b.rows[posToY[pos]].MarkUsed(v)
	b.cols[posToX[pos]].MarkUsed(v)
	b.quads[posToQuad[pos]].MarkUsed(v)

	b.excludeFromPeers(pos, v)
	b.refreshComplexity()
}

// excludeFromPeers drops v from the candidate set of every undecided
// cell sharing pos's row, column, or quadrant.
func (b *Board) excludeFromPeers(pos int, v Value) {
	x, y := posToX[pos], posToY[pos]
	for i := 0; i < Size; i++ {
		b.exclude(y*Size+i, v)
		b.exclude(i*Size+x, v)
	}
	qx, qy := (x/3)*3, (y/3)*3
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			b.exclude((qy+dy)*Size+qx+dx, v)
		}
	}
}

func (b *Board) exclude(pos int, v Value) {
	c := &b.cells[pos]
	if c.decided || !c.candidates.Has(v) {
		return
	}
	c.candidates = c.candidates.Without(v)
	c.complexity--
}

// Mark adds value v to the candidate set of the undecided cell at
// (x, y). A no-op when the bit is already set; marking a decided cell is
// an error. Mark and Unmark adjust candidates only, they never touch
// region metadata. Keeping the two consistent is the caller's business;
// Refresh rebuilds everything from the decided cells when in doubt.
func (b *Board) Mark(x, y int, v Value) error {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return err
	}
	if err := validateValue(v); err != nil {
		return err
	}
	c := &b.cells[pos]
	if c.decided {
		return fmt.Errorf("%w: cannot mark (%d, %d)", ErrCellDecided, x, y)
	}
	if !c.candidates.Has(v) {
		c.candidates = c.candidates.With(v)
		c.complexity++
		b.refreshComplexity()
	}
	return nil
}

// Unmark removes value v from the candidate set of the undecided cell at
// (x, y). The counterpart of Mark; the same rules apply.
func (b *Board) Unmark(x, y int, v Value) error {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return err
	}
	if err := validateValue(v); err != nil {
		return err
	}
	c := &b.cells[pos]
	if c.decided {
		return fmt.Errorf("%w: cannot unmark (%d, %d)", ErrCellDecided, x, y)
	}
	if c.candidates.Has(v) {
		c.candidates = c.candidates.Without(v)
		c.complexity--
		b.refreshComplexity()
	}
	return nil
}

// RefreshComplexity recomputes the board complexity as the minimum
// candidate count among undecided cells, or 0 when none remain. Returns
// false when some undecided cell has no candidates left, meaning the
// board cannot be completed.
func (b *Board) RefreshComplexity() bool {
	return b.refreshComplexity()
}

func (b *Board) refreshComplexity() bool {
	const unknown = NumValues + 1
	min := uint8(unknown)
	ok := true
	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if c.decided {
			continue
		}
		if c.complexity == 0 {
			ok = false
		}
		if c.complexity < min {
			min = c.complexity
		}
	}
	if min == unknown {
		min = 0
	}
	b.complexity = min
	return ok
}

// Clear reverts the cell at (x, y) to the undecided state and rebuilds
// all metadata and candidate sets from the remaining decided cells.
// Clearing an already undecided cell is a no-op.
func (b *Board) Clear(x, y int) error {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return err
	}
	if !b.cells[pos].decided {
		return nil
	}
	b.cells[pos] = blankCell()
	b.emptyCount++
	return b.Refresh()
}

// Refresh rebuilds every region's used set from the decided cells, then
// recomputes every undecided cell's candidates and the board complexity.
// A decided value appearing twice in a region is reported as
// ErrIllegalMove; the board is not usable after an error.
func (b *Board) Refresh() error {
	for i := 0; i < Size; i++ {
		b.rows[i].Clear()
		b.cols[i].Clear()
		b.quads[i].Clear()
	}

	empty := 0
	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if !c.decided {
			empty++
			continue
		}
		x, y, quad := posToX[pos], posToY[pos], posToQuad[pos]
		if b.rows[y].HasUsed(c.value) {
			return fmt.Errorf("%w: value %d twice in row %d", ErrIllegalMove, c.value+1, y)
		}
		if b.cols[x].HasUsed(c.value) {
			return fmt.Errorf("%w: value %d twice in column %d", ErrIllegalMove, c.value+1, x)
		}
		if b.quads[quad].HasUsed(c.value) {
			return fmt.Errorf("%w: value %d twice in quadrant %d", ErrIllegalMove, c.value+1, quad)
		}
		b.rows[y].MarkUsed(c.value)
		b.cols[x].MarkUsed(c.value)
		b.quads[quad].MarkUsed(c.value)
	}
	b.emptyCount = empty

	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if c.decided {
			continue
		}
		set := AllValues &^ (b.rows[posToY[pos]].Used() |
			b.cols[posToX[pos]].Used() |
			b.quads[posToQuad[pos]].Used())
		c.candidates = set
		c.complexity = uint8(set.Count())
	}

	b.refreshComplexity()
	return nil
}

// PlaceSpeculative copies the board into dst and places value v at
// (x, y) there, leaving the receiver untouched. When the placement is
// rejected up front the copy is skipped and dst stays untouched. When
// the placement leaves dst with an undecided cell out of candidates the
// attempt also fails; dst is then dirty but not mutated further, and
// callers must not read it. Returns true only for a viable placement.
func (b *Board) PlaceSpeculative(dst *Board, x, y int, v Value) (bool, error) {
	pos, err := b.validateCoords(x, y)
	if err != nil {
		return false, err
	}
	if err := validateValue(v); err != nil {
		return false, err
	}
	if b.cells[pos].decided || !b.canPlace(pos, v) {
		return false, nil
	}
	b.CopyTo(dst)
	dst.place(pos, v)
	return dst.IsValid(), nil
}

// HasValue reports whether the cell at (x, y) is decided. Out-of-range
// coordinates report false.
func (b *Board) HasValue(x, y int) bool {
	if !inBounds(x, y) {
		return false
	}
	return b.cells[y*Size+x].decided
}

// ValueAt returns the decided value at (x, y). ok is false for undecided
// cells and out-of-range coordinates.
func (b *Board) ValueAt(x, y int) (Value, bool) {
	if !inBounds(x, y) {
		return 0, false
	}
	c := b.cells[y*Size+x]
	return c.value, c.decided
}

// CandidatesAt returns the candidate set of the cell at (x, y). Decided
// cells and out-of-range coordinates return the empty set.
func (b *Board) CandidatesAt(x, y int) ValueSet {
	if !inBounds(x, y) {
		return 0
	}
	c := b.cells[y*Size+x]
	if c.decided {
		return 0
	}
	return c.candidates
}

// CellComplexity returns the candidate count of the cell at (x, y), 0
// for decided cells and out-of-range coordinates.
func (b *Board) CellComplexity(x, y int) int {
	if !inBounds(x, y) {
		return 0
	}
	c := b.cells[y*Size+x]
	if c.decided {
		return 0
	}
	return int(c.complexity)
}

// Complexity returns the board complexity.
func (b *Board) Complexity() int {
	return int(b.complexity)
}

// EmptyCount returns the number of undecided cells.
func (b *Board) EmptyCount() int {
	return b.emptyCount
}

// ClueCount returns the number of decided cells.
func (b *Board) ClueCount() int {
	return CellCount - b.emptyCount
}

// Solved reports whether every cell is decided.
func (b *Board) Solved() bool {
	return b.emptyCount == 0
}

// String returns the board as an 81-character row-major string: decided
// cells as their display digit, undecided cells as '.'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for pos := 0; pos < CellCount; pos++ {
		c := b.cells[pos]
		if c.decided {
			sb.WriteByte(c.value.Digit())
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Grid returns the board as a 9x9 array of display digits, 0 for
// undecided cells.
func (b *Board) Grid() [Size][Size]int {
	var g [Size][Size]int
	for pos := 0; pos < CellCount; pos++ {
		c := b.cells[pos]
		if c.decided {
			g[posToY[pos]][posToX[pos]] = int(c.value) + 1
		}
	}
	return g
}
