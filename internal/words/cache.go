// internal/words/cache.go
//
// On-disk dictionary cache.
//
// The cache is a single JSON document, {"words": [...]}, the same shape the
// backend serves on /words/{lang}. It is considered stale once its
// modification time is older than MaxAge, or when it does not exist.
// Writes go to a temp file in the same directory and are renamed into place
// so a crash never leaves a truncated cache behind.

package words

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultMaxAge is how long a cached dictionary is trusted.
const DefaultMaxAge = 7 * 24 * time.Hour

// File is the JSON document stored in the cache.
type File struct {
	Words []string `json:"words"`
}

// Fetcher retrieves the remote word list.
type Fetcher interface {
	Dictionary(ctx context.Context) ([]string, error)
}

// Cache manages the dictionary file at Path.
type Cache struct {
	Path   string
	MaxAge time.Duration
}

// NewCache returns a cache stored as dictionary.json under dir.
func NewCache(dir string, maxAge time.Duration) *Cache {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Cache{Path: filepath.Join(dir, "dictionary.json"), MaxAge: maxAge}
}

// Age returns how old the cache file is. ok is false when it does not exist.
func (c *Cache) Age(now time.Time) (age time.Duration, ok bool) {
	fi, err := os.Stat(c.Path)
	if err != nil {
		return 0, false
	}
	return now.Sub(fi.ModTime()), true
}

// Stale reports whether the cache should be refreshed at now.
func (c *Cache) Stale(now time.Time) bool {
	age, ok := c.Age(now)
	return !ok || age > c.MaxAge
}

// Load reads and parses the cache file.
func (c *Cache) Load() ([]string, error) {
	b, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.Path, err)
	}
	if len(f.Words) == 0 {
		return nil, fmt.Errorf("%s: %w", c.Path, ErrEmptyDictionary)
	}
	return f.Words, nil
}

// Store writes list to the cache atomically.
func (c *Cache) Store(list []string) error {
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	b, err := json.Marshal(File{Words: list})
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "dictionary-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into %s: %w", c.Path, err)
	}
	return nil
}

// Refresh fetches the remote list and stores it. It returns the number of
// words written.
func (c *Cache) Refresh(ctx context.Context, f Fetcher) (int, error) {
	list, err := f.Dictionary(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch dictionary: %w", err)
	}
	if len(list) == 0 {
		return 0, ErrEmptyDictionary
	}
	if err := c.Store(list); err != nil {
		return 0, err
	}
	return len(list), nil
}

// ErrEmptyDictionary is returned when a source yields no words.
var ErrEmptyDictionary = errors.New("dictionary is empty")
