// Package storage persists generated puzzles as one JSON file per
// puzzle under a directory.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no stored puzzle has the requested ID.
var ErrNotFound = errors.New("puzzle not found")

// Puzzle is the stored form of a generated puzzle. Board contents are
// kept as 81-character strings, the same shape the loader reads.
type Puzzle struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	Clues      int       `json:"clues"`
	Difficulty int       `json:"difficulty"`
	Puzzle     string    `json:"puzzle"`
	Solution   string    `json:"solution,omitempty"`
}

// Store reads and writes puzzles under a single directory.
type Store struct {
	dir string
}

// New opens a store rooted at dir, creating the directory when missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the puzzle to disk, assigning a fresh ID and creation time
// when it has none. The write goes through a temp file and rename so a
// crash cannot leave a torn puzzle behind.
func (s *Store) Save(ctx context.Context, p *Puzzle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	path := s.path(p.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// Load reads the puzzle with the given ID.
func (s *Store) Load(ctx context.Context, id string) (*Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &p, nil
}

// List returns every stored puzzle, newest first. Unreadable entries are
// skipped rather than failing the whole listing.
func (s *Store) List(ctx context.Context) ([]*Puzzle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	puzzles := make([]*Puzzle, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		p, err := s.Load(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		puzzles = append(puzzles, p)
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].CreatedAt.After(puzzles[j].CreatedAt)
	})
	return puzzles, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// validID keeps IDs from escaping the store directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\.`)
}
