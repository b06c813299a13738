package board

// Board geometry.
const (
	// Size is the side length of the board.
	Size = 9
	// CellCount is the total number of cells.
	CellCount = Size * Size
)

// Lookup tables from a linear cell index to its column, row, and
// quadrant, filled once at startup.
var (
	posToX    [CellCount]int
	posToY    [CellCount]int
	posToQuad [CellCount]int
)

func init() {
	for pos := 0; pos < CellCount; pos++ {
		x, y := pos%Size, pos/Size
		posToX[pos] = x
		posToY[pos] = y
		posToQuad[pos] = QuadrantOf(x, y)
	}
}

// Index transforms (x, y) coordinates into a linear row-major cell
// index. Returns -1 when either coordinate is out of bounds.
func Index(x, y int) int {
	if !inBounds(x, y) {
		return -1
	}
	return y*Size + x
}

// Coords transforms a linear cell index back into (x, y) coordinates.
// Returns (-1, -1) when the index is out of bounds.
func Coords(pos int) (x, y int) {
	if pos < 0 || pos >= CellCount {
		return -1, -1
	}
	return posToX[pos], posToY[pos]
}

// QuadrantOf returns the quadrant holding (x, y). Quadrants are numbered
// 0 through 8, row-major across the three 3x3 bands. Returns -1 when
// either coordinate is out of bounds.
func QuadrantOf(x, y int) int {
	if !inBounds(x, y) {
		return -1
	}
	return (y/3)*3 + x/3
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}
