// internal/store/memory.go
//
// In-memory puzzle cache for the backend.
// Puzzles are deterministic per date, so the server computes each one once
// and keeps it here.
//
// Characteristics:
//   - Stores daily.Puzzle values keyed by language and date key (YYYY-MM-DD).
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for missing keys.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/kelime/internal/daily"
)

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("not found")

// PuzzleStore caches computed puzzles.
type PuzzleStore interface {
	// Save stores or replaces the puzzle for lang on p's date.
	Save(ctx context.Context, lang string, p daily.Puzzle) error

	// Get retrieves the puzzle for lang on dateKey.
	Get(ctx context.Context, lang, dateKey string) (daily.Puzzle, error)
}

type memory struct {
	mu      sync.RWMutex            // guards puzzles
	puzzles map[string]daily.Puzzle // keyed by lang|date
}

// NewMemoryStore constructs an empty in-memory PuzzleStore.
func NewMemoryStore() PuzzleStore {
	return &memory{puzzles: make(map[string]daily.Puzzle)}
}

func key(lang, dateKey string) string { return lang + "|" + dateKey }

func (m *memory) Save(ctx context.Context, lang string, p daily.Puzzle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puzzles[key(lang, daily.DateKey(p.Date))] = p
	return nil
}

func (m *memory) Get(ctx context.Context, lang, dateKey string) (daily.Puzzle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.puzzles[key(lang, dateKey)]; ok {
		return p, nil
	}
	return daily.Puzzle{}, ErrNotFound
}
