package generator

import "time"

// Options configures puzzle generation behavior.
type Options struct {
	ClueCount    int           // Number of clues to leave in the puzzle
	Timeout      time.Duration // Timeout limits total generation time
	Seed         int64         // Seed for reproducible puzzles (0 = random)
	EnsureUnique bool          // EnsureUnique keeps only single-solution puzzles
}

// DefaultOptions returns standard generator options with the clue count
// clamped to the valid range.
func DefaultOptions(clueCount int) *Options {
	clueCount = min(max(clueCount, MinValidClueCount), MaxValidClueCount)

	return &Options{
		ClueCount:    clueCount,
		Timeout:      10 * time.Second,
		Seed:         0,
		EnsureUnique: true,
	}
}
