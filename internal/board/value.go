package board

import "math/bits"

// NumValues is the number of distinct cell values.
const NumValues = 9

// Value is a zero-based cell value in [0, 9). Text formats and renderers
// show values one-based, so Value 0 prints as '1'.
type Value uint8

// Digit returns the one-based display digit for the value.
func (v Value) Digit() byte {
	return byte('1' + v)
}

// ValueSet is a set of candidate values packed into the low nine bits of
// a uint16. Bit v set means Value v is a member.
type ValueSet uint16

// AllValues is the set containing every value.
const AllValues ValueSet = 1<<NumValues - 1

// Has reports whether v is in the set.
func (s ValueSet) Has(v Value) bool {
	return s&(1<<v) != 0
}

// With returns the set with v added.
func (s ValueSet) With(v Value) ValueSet {
	return s | 1<<v
}

// Without returns the set with v removed.
func (s ValueSet) Without(v Value) ValueSet {
	return s &^ (1 << v)
}

// Count returns the number of values in the set.
func (s ValueSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// Single returns the set's only member. ok is false unless the set holds
// exactly one value.
func (s ValueSet) Single() (Value, bool) {
	if s.Count() != 1 {
		return 0, false
	}
	return Value(bits.TrailingZeros16(uint16(s))), true
}

// Values returns the members of the set in increasing order.
func (s ValueSet) Values() []Value {
	vals := make([]Value, 0, s.Count())
	for v := Value(0); v < NumValues; v++ {
		if s.Has(v) {
			vals = append(vals, v)
		}
	}
	return vals
}
