package solver

import "time"

// Options configures solving behavior.
type Options struct {
	// Timeout bounds the search. Zero means no limit.
	Timeout time.Duration
	// Randomize shuffles the candidate order tried at each branch. The
	// choice of branch cell itself stays deterministic.
	Randomize bool
	// Seed makes randomized runs reproducible (0 = time-based).
	Seed int64
	// HiddenSingles places values with a single possible cell left in
	// some region between forced sweeps. Cheap on hard puzzles, pure
	// overhead on easy ones.
	HiddenSingles bool
}

// DefaultOptions returns standard solver options: deterministic,
// unbounded, forced resolution only.
func DefaultOptions() *Options {
	return &Options{}
}
