// Package scores persists the one cumulative stat spec.md's data model
// defines: lines cleared. There is no score or level in scope, so this
// store tracks a single best-lines-cleared record per seed mode, the
// ambient-persistence analogue of a high score table.
package scores

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry holds a single best-run record.
type Entry struct {
	LinesCleared uint64 `json:"lines_cleared"`
	Date         string `json:"date"`
}

// BestRuns stores the best lines-cleared record per seed mode: "random"
// for an unseeded session, or the decimal seed value for a seeded one.
type BestRuns struct {
	ByMode map[string]*Entry `json:"by_mode,omitempty"`
}

// Store manages best-run persistence.
type Store struct {
	path  string
	Bests BestRuns
}

// Load reads the best-runs file from the default location.
func Load() (*Store, error) {
	return LoadFrom("")
}

// LoadFrom reads best runs from a specific path. If path is empty, uses
// the default location (~/.cli-tetris/scores.json).
func LoadFrom(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Store{Bests: BestRuns{}}, err
		}
		path = filepath.Join(home, ".cli-tetris", "scores.json")
	}

	s := &Store{path: path, Bests: BestRuns{}}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from UserHomeDir or test-controlled input
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s.Bests); err != nil {
		return s, err
	}
	return s, nil
}

// Save writes the best runs to disk.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Bests, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Update records linesCleared for mode if it beats the current best.
// Returns true if a new best was set.
func (s *Store) Update(mode string, linesCleared uint64) bool {
	if s.Bests.ByMode == nil {
		s.Bests.ByMode = make(map[string]*Entry)
	}
	if current := s.Bests.ByMode[mode]; current != nil && linesCleared <= current.LinesCleared {
		return false
	}
	s.Bests.ByMode[mode] = &Entry{
		LinesCleared: linesCleared,
		Date:         time.Now().Format("2006-01-02"),
	}
	return true
}

// Get returns the best-run entry for mode, or nil if none exists.
func (s *Store) Get(mode string) *Entry {
	if s.Bests.ByMode == nil {
		return nil
	}
	return s.Bests.ByMode[mode]
}
