package puzzle

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GabrielTofvesson/sudoku/internal/board"
)

const (
	classicGrid = `53..7....
6..195...
.98....6.
8...6...3
4..8.3..1
7...2...6
.6....28.
...419..5
....8..79`
	classicLine = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
)

func TestParseGridFormat(t *testing.T) {
	b, err := ParseString(classicGrid)
	if err != nil {
		t.Fatalf("ParseString() = %v", err)
	}
	if b.ClueCount() != 30 {
		t.Errorf("ClueCount() = %d, want 30", b.ClueCount())
	}
	if got := b.String(); got != classicLine {
		t.Errorf("parsed board = %q", got)
	}
	if v, ok := b.ValueAt(0, 0); !ok || v.Digit() != '5' {
		t.Errorf("cell (0, 0) = %d, %v", v, ok)
	}
	if b.HasValue(2, 0) {
		t.Error("blank cell came out decided")
	}
}

func TestParseLineFormat(t *testing.T) {
	b, err := ParseString(classicLine)
	if err != nil {
		t.Fatalf("ParseString() = %v", err)
	}
	if got := b.String(); got != classicLine {
		t.Errorf("parsed board = %q", got)
	}

	// A trailing newline on the single-line form is fine.
	if _, err := ParseString(classicLine + "\n"); err != nil {
		t.Errorf("ParseString() with trailing newline = %v", err)
	}
}

func TestParseBlankCharacters(t *testing.T) {
	// Spaces, dots, and zeros all read as blanks.
	for _, blank := range []string{" ", ".", "0"} {
		line := "12345678" + strings.Repeat(blank, 73)
		b, err := ParseString(line)
		if err != nil {
			t.Fatalf("blank %q: %v", blank, err)
		}
		if b.ClueCount() != 8 {
			t.Errorf("blank %q: ClueCount() = %d, want 8", blank, b.ClueCount())
		}
	}
}

func TestParseCRLF(t *testing.T) {
	b, err := ParseString(strings.ReplaceAll(classicGrid, "\n", "\r\n"))
	if err != nil {
		t.Fatalf("ParseString() = %v", err)
	}
	if b.String() != classicLine {
		t.Error("CRLF input parsed differently")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrBadFormat},
		{"too few lines", "53..7....\n6..195...", ErrBadFormat},
		{"short line", strings.Replace(classicGrid, ".98....6.", ".98....6", 1), ErrBadFormat},
		{"short single line", classicLine[:80], ErrBadFormat},
		{"bad character", strings.Replace(classicLine, "5", "x", 1), ErrBadFormat},
		{"row duplicate", "55" + strings.Repeat(".", 79), board.ErrIllegalMove},
		{"column duplicate", "5" + strings.Repeat(".", 8) + "5" + strings.Repeat(".", 71), board.ErrIllegalMove},
		{"quadrant duplicate", "5" + strings.Repeat(".", 9) + "5" + strings.Repeat(".", 70), board.ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseString(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseString() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	b, err := Parse(strings.NewReader(classicGrid + "\n"))
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if b.String() != classicLine {
		t.Error("reader input parsed differently")
	}
}

func TestLoad(t *testing.T) {
	b, err := Load(filepath.Join("testdata", "classic.txt"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if b.String() != classicLine {
		t.Error("file input parsed differently")
	}

	if _, err := Load(filepath.Join("testdata", "missing.txt")); err == nil {
		t.Error("Load() on a missing file = nil error")
	}
}
