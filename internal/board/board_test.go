package board

import (
	"errors"
	"strings"
	"testing"
)

func mustPlace(t *testing.T, b *Board, x, y int, v Value) {
	t.Helper()
	if err := b.Place(x, y, v); err != nil {
		t.Fatalf("Place(%d, %d, %d): %v", x, y, v, err)
	}
}

// checkConsistency verifies that on a board mutated only through Place,
// a value is a candidate of an undecided cell exactly when none of the
// cell's regions has it marked used.
func checkConsistency(t *testing.T, b *Board) {
	t.Helper()
	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if c.decided {
			continue
		}
		x, y, quad := posToX[pos], posToY[pos], posToQuad[pos]
		for v := Value(0); v < NumValues; v++ {
			used := b.rows[y].HasUsed(v) || b.cols[x].HasUsed(v) || b.quads[quad].HasUsed(v)
			if c.candidates.Has(v) == used {
				t.Fatalf("cell (%d, %d): candidate %d = %v but used %v", x, y, v+1, c.candidates.Has(v), used)
			}
		}
	}
}

// checkComplexity verifies every cached complexity against the candidate
// sets it summarizes.
func checkComplexity(t *testing.T, b *Board) {
	t.Helper()
	min := NumValues + 1
	undecided := 0
	for pos := 0; pos < CellCount; pos++ {
		c := &b.cells[pos]
		if c.decided {
			continue
		}
		undecided++
		if int(c.complexity) != c.candidates.Count() {
			x, y := posToX[pos], posToY[pos]
			t.Fatalf("cell (%d, %d): complexity %d, candidates hold %d", x, y, c.complexity, c.candidates.Count())
		}
		if int(c.complexity) < min {
			min = int(c.complexity)
		}
	}
	if undecided == 0 {
		min = 0
	}
	if b.Complexity() != min {
		t.Fatalf("board complexity %d, want %d", b.Complexity(), min)
	}
	if b.EmptyCount() != undecided {
		t.Fatalf("EmptyCount() = %d, want %d", b.EmptyCount(), undecided)
	}
}

func TestNewBlank(t *testing.T) {
	b := New()

	if b.EmptyCount() != CellCount {
		t.Errorf("EmptyCount() = %d, want %d", b.EmptyCount(), CellCount)
	}
	if b.Complexity() != NumValues {
		t.Errorf("Complexity() = %d, want %d", b.Complexity(), NumValues)
	}
	if b.Solved() {
		t.Error("blank board reports solved")
	}
	if !b.IsValid() {
		t.Error("blank board reports invalid")
	}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.CandidatesAt(x, y) != AllValues {
				t.Fatalf("cell (%d, %d) candidates = %b, want all", x, y, b.CandidatesAt(x, y))
			}
		}
	}
	if b.String() != strings.Repeat(".", CellCount) {
		t.Errorf("String() = %q", b.String())
	}
}

func TestInitResetsEverything(t *testing.T) {
	b := New()
	mustPlace(t, b, 0, 0, 4)
	mustPlace(t, b, 8, 8, 4)
	if err := b.Unmark(4, 4, 2); err != nil {
		t.Fatal(err)
	}

	b.Init()
	if *b != *New() {
		t.Error("Init() did not restore the blank state")
	}

	// A second Init on an already blank board changes nothing.
	b.Init()
	if *b != *New() {
		t.Error("repeated Init() changed the board")
	}
}

func TestPlaceUpdatesPeers(t *testing.T) {
	b := New()
	mustPlace(t, b, 4, 4, 6)

	if !b.HasValue(4, 4) {
		t.Fatal("cell not decided after Place")
	}
	if v, ok := b.ValueAt(4, 4); !ok || v != 6 {
		t.Fatalf("ValueAt(4, 4) = %d, %v", v, ok)
	}
	if b.EmptyCount() != CellCount-1 {
		t.Errorf("EmptyCount() = %d", b.EmptyCount())
	}

	// Row, column, and quadrant peers lose the candidate.
	for _, c := range [][2]int{{0, 4}, {4, 0}, {3, 3}, {5, 5}} {
		if b.CandidatesAt(c[0], c[1]).Has(6) {
			t.Errorf("peer (%d, %d) still has candidate", c[0], c[1])
		}
		if b.CellComplexity(c[0], c[1]) != NumValues-1 {
			t.Errorf("peer (%d, %d) complexity = %d", c[0], c[1], b.CellComplexity(c[0], c[1]))
		}
	}
	// Unrelated cells keep all candidates.
	if b.CandidatesAt(0, 8) != AllValues {
		t.Errorf("cell (0, 8) candidates = %b, want all", b.CandidatesAt(0, 8))
	}

	checkConsistency(t, b)
	checkComplexity(t, b)
}

func TestPlaceErrors(t *testing.T) {
	b := New()
	mustPlace(t, b, 0, 0, 4)

	tests := []struct {
		name    string
		x, y    int
		v       Value
		wantErr error
	}{
		{"x out of range", 9, 0, 0, ErrInvalidPosition},
		{"y negative", 0, -1, 0, ErrInvalidPosition},
		{"value out of range", 1, 1, 9, ErrInvalidValue},
		{"row duplicate", 5, 0, 4, ErrIllegalMove},
		{"column duplicate", 0, 7, 4, ErrIllegalMove},
		{"quadrant duplicate", 1, 2, 4, ErrIllegalMove},
		{"decided cell", 0, 0, 2, ErrCellDecided},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := *b
			err := b.Place(tt.x, tt.y, tt.v)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Place(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.v, err, tt.wantErr)
			}
			if *b != snapshot {
				t.Error("failed Place mutated the board")
			}
		})
	}
}

func TestCanPlace(t *testing.T) {
	b := New()
	mustPlace(t, b, 3, 3, 0)

	tests := []struct {
		name string
		x, y int
		v    Value
		want bool
	}{
		{"free cell free value", 7, 7, 0, true},
		{"same row", 8, 3, 0, false},
		{"same column", 3, 8, 0, false},
		{"same quadrant", 5, 5, 0, false},
		{"other value same row", 8, 3, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.CanPlace(tt.x, tt.y, tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("CanPlace(%d, %d, %d) = %v, want %v", tt.x, tt.y, tt.v, got, tt.want)
			}
		})
	}

	if _, err := b.CanPlace(-1, 0, 0); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("CanPlace(-1, 0, 0) err = %v, want ErrInvalidPosition", err)
	}
	if _, err := b.CanPlace(0, 0, 12); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("CanPlace(0, 0, 12) err = %v, want ErrInvalidValue", err)
	}
}

// TestFirstRowFill walks values 1-9 across the top row and checks the
// candidate bookkeeping after every step.
func TestFirstRowFill(t *testing.T) {
	b := New()

	for x := 0; x < Size; x++ {
		mustPlace(t, b, x, 0, Value(x))
		checkConsistency(t, b)
		checkComplexity(t, b)
	}

	// The full top row pins down its neighbors: a cell directly below
	// loses its column value plus the three quadrant values, a far cell
	// only its column value.
	if got := b.CellComplexity(0, 1); got != 6 {
		t.Errorf("cell (0, 1) complexity = %d, want 6", got)
	}
	if got := b.CandidatesAt(0, 1); got != AllValues.Without(0).Without(1).Without(2) {
		t.Errorf("cell (0, 1) candidates = %b", got)
	}
	if got := b.CellComplexity(0, 4); got != 8 {
		t.Errorf("cell (0, 4) complexity = %d, want 8", got)
	}
	if b.Complexity() != 6 {
		t.Errorf("board complexity = %d, want 6", b.Complexity())
	}
	if got := b.String()[:Size]; got != "123456789" {
		t.Errorf("top row renders as %q", got)
	}
}

// TestPlacementExclusivity checks that after placing a value, no cell
// sharing a region still offers it as a candidate.
func TestPlacementExclusivity(t *testing.T) {
	b := New()
	mustPlace(t, b, 4, 4, 2)

	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			shared := x == 4 || y == 4 || QuadrantOf(x, y) == QuadrantOf(4, 4)
			if shared && b.CandidatesAt(x, y).Has(2) {
				t.Errorf("cell (%d, %d) shares a region but keeps the candidate", x, y)
			}
			if !shared && !b.CandidatesAt(x, y).Has(2) {
				t.Errorf("cell (%d, %d) shares no region but lost the candidate", x, y)
			}
		}
	}
}

func TestCopyIndependence(t *testing.T) {
	src := New()
	mustPlace(t, src, 0, 0, 0)
	mustPlace(t, src, 4, 4, 5)

	dst := New()
	src.CopyTo(dst)
	if *src != *dst {
		t.Fatal("copy differs from source")
	}

	snapshot := *src
	mustPlace(t, dst, 8, 8, 3)
	if *src != snapshot {
		t.Error("mutating the copy changed the source")
	}
	if dst.EmptyCount() != src.EmptyCount()-1 {
		t.Error("copy did not take the mutation")
	}

	clone := src.Clone()
	if *clone != *src {
		t.Fatal("clone differs from source")
	}
	mustPlace(t, clone, 8, 0, 3)
	if *src != snapshot {
		t.Error("mutating the clone changed the source")
	}
}

func TestMarkUnmark(t *testing.T) {
	b := New()

	if err := b.Unmark(4, 4, 3); err != nil {
		t.Fatal(err)
	}
	if b.CandidatesAt(4, 4).Has(3) {
		t.Error("candidate still present after Unmark")
	}
	if b.CellComplexity(4, 4) != 8 {
		t.Errorf("cell complexity = %d, want 8", b.CellComplexity(4, 4))
	}
	if b.Complexity() != 8 {
		t.Errorf("board complexity = %d, want 8", b.Complexity())
	}

	// Repeating the removal changes nothing.
	snapshot := *b
	if err := b.Unmark(4, 4, 3); err != nil {
		t.Fatal(err)
	}
	if *b != snapshot {
		t.Error("repeated Unmark changed the board")
	}

	// Mark restores the blank state exactly.
	if err := b.Mark(4, 4, 3); err != nil {
		t.Fatal(err)
	}
	if *b != *New() {
		t.Error("Mark did not undo Unmark")
	}

	mustPlace(t, b, 0, 0, 0)
	if err := b.Mark(0, 0, 5); !errors.Is(err, ErrCellDecided) {
		t.Errorf("Mark on decided cell = %v, want ErrCellDecided", err)
	}
	if err := b.Unmark(0, 0, 5); !errors.Is(err, ErrCellDecided) {
		t.Errorf("Unmark on decided cell = %v, want ErrCellDecided", err)
	}
}

func TestUnmarkToContradiction(t *testing.T) {
	b := New()
	for v := Value(0); v < NumValues; v++ {
		if err := b.Unmark(0, 0, v); err != nil {
			t.Fatal(err)
		}
	}

	if b.Complexity() != 0 {
		t.Errorf("board complexity = %d, want 0", b.Complexity())
	}
	if b.Solved() {
		t.Error("starved board reports solved")
	}
	if b.IsValid() {
		t.Error("starved board reports valid")
	}
	if b.RefreshComplexity() {
		t.Error("RefreshComplexity() = true on starved board")
	}
}

func TestClearRestores(t *testing.T) {
	b := New()
	mustPlace(t, b, 0, 0, 5)
	mustPlace(t, b, 4, 4, 0)

	if err := b.Clear(4, 4); err != nil {
		t.Fatal(err)
	}

	want := New()
	mustPlace(t, want, 0, 0, 5)
	if *b != *want {
		t.Error("Clear did not rebuild candidates and metadata")
	}

	// Clearing an undecided cell is a no-op.
	if err := b.Clear(8, 8); err != nil {
		t.Fatal(err)
	}
	if *b != *want {
		t.Error("Clear on undecided cell changed the board")
	}
}

func TestRefreshRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name string
		a, b int // linear indices given the same value
	}{
		{"row", Index(0, 0), Index(5, 0)},
		{"column", Index(3, 1), Index(3, 8)},
		{"quadrant", Index(0, 0), Index(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.cells[tt.a] = cell{decided: true, value: 4}
			b.cells[tt.b] = cell{decided: true, value: 4}
			if err := b.Refresh(); !errors.Is(err, ErrIllegalMove) {
				t.Errorf("Refresh() = %v, want ErrIllegalMove", err)
			}
		})
	}
}

func TestRefreshRebuilds(t *testing.T) {
	b := New()
	mustPlace(t, b, 0, 0, 5)
	mustPlace(t, b, 7, 2, 1)

	// Wreck the cached state, then rebuild it.
	rebuilt := *b
	rebuilt.cells[Index(4, 4)].candidates = 0
	rebuilt.cells[Index(4, 4)].complexity = 0
	rebuilt.rows[8].MarkUsed(8)
	rebuilt.complexity = 0
	rebuilt.emptyCount = 0

	if err := rebuilt.Refresh(); err != nil {
		t.Fatal(err)
	}
	if rebuilt != *b {
		t.Error("Refresh did not restore the derived state")
	}
}

func TestPlaceSpeculative(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		src := New()
		mustPlace(t, src, 0, 0, 0)
		snapshot := *src

		dst := New()
		ok, err := src.PlaceSpeculative(dst, 4, 4, 0)
		if err != nil || !ok {
			t.Fatalf("PlaceSpeculative = %v, %v", ok, err)
		}
		if *src != snapshot {
			t.Error("speculative placement mutated the source")
		}
		if !dst.HasValue(4, 4) || !dst.HasValue(0, 0) {
			t.Error("destination missing placements")
		}
		checkConsistency(t, dst)
		checkComplexity(t, dst)
	})

	t.Run("rejected placement leaves dst untouched", func(t *testing.T) {
		src := New()
		mustPlace(t, src, 0, 0, 0)

		dst := New()
		mustPlace(t, dst, 8, 8, 7)
		snapshot := *dst

		ok, err := src.PlaceSpeculative(dst, 5, 0, 0) // same row as the 1
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("PlaceSpeculative accepted an illegal move")
		}
		if *dst != snapshot {
			t.Error("rejected placement touched the destination")
		}

		ok, err = src.PlaceSpeculative(dst, 0, 0, 3) // decided cell
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("PlaceSpeculative accepted a decided cell")
		}
		if *dst != snapshot {
			t.Error("rejected placement touched the destination")
		}
	})

	t.Run("starving a peer fails", func(t *testing.T) {
		src := New()
		// Strip (0, 0) down to the single candidate 1.
		for v := Value(1); v < NumValues; v++ {
			if err := src.Unmark(0, 0, v); err != nil {
				t.Fatal(err)
			}
		}

		dst := New()
		ok, err := src.PlaceSpeculative(dst, 8, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("PlaceSpeculative accepted a placement that starves (0, 0)")
		}
	})

	t.Run("errors", func(t *testing.T) {
		src, dst := New(), New()
		if _, err := src.PlaceSpeculative(dst, 9, 9, 0); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("err = %v, want ErrInvalidPosition", err)
		}
		if _, err := src.PlaceSpeculative(dst, 0, 0, 10); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("err = %v, want ErrInvalidValue", err)
		}
	})
}

func TestStringAndGrid(t *testing.T) {
	b := New()
	mustPlace(t, b, 0, 0, 0)
	mustPlace(t, b, 8, 8, 8)
	mustPlace(t, b, 3, 1, 6)

	s := b.String()
	if len(s) != CellCount {
		t.Fatalf("String() length = %d", len(s))
	}
	if s[0] != '1' || s[CellCount-1] != '9' || s[Index(3, 1)] != '7' {
		t.Errorf("String() = %q", s)
	}

	g := b.Grid()
	if g[0][0] != 1 || g[8][8] != 9 || g[1][3] != 7 {
		t.Errorf("Grid() = %v", g)
	}
	if g[4][4] != 0 {
		t.Errorf("undecided cell rendered as %d", g[4][4])
	}
}

func TestQueriesOutOfRange(t *testing.T) {
	b := New()
	if b.HasValue(-1, 0) || b.HasValue(0, 9) {
		t.Error("HasValue out of range = true")
	}
	if _, ok := b.ValueAt(9, 9); ok {
		t.Error("ValueAt out of range ok = true")
	}
	if b.CandidatesAt(-1, -1) != 0 {
		t.Error("CandidatesAt out of range not empty")
	}
	if b.CellComplexity(0, -5) != 0 {
		t.Error("CellComplexity out of range not 0")
	}
}
