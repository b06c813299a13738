package board

// RegionMeta aggregates the decided values of one region (a row, column,
// or quadrant). The used set is the Sudoku constraint itself: a value may
// appear at most once per region.
type RegionMeta struct {
	used ValueSet
}

// Clear empties the used set.
func (m *RegionMeta) Clear() {
	m.used = 0
}

// MarkUsed records value v as placed somewhere in the region.
// Idempotent.
func (m *RegionMeta) MarkUsed(v Value) {
	m.used = m.used.With(v)
}

// HasUsed reports whether value v is already placed in the region.
func (m *RegionMeta) HasUsed(v Value) bool {
	return m.used.Has(v)
}

// Used returns the region's used set.
func (m *RegionMeta) Used() ValueSet {
	return m.used
}
