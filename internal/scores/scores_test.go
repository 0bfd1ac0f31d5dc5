package scores

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.json")
	return &Store{path: path, Bests: BestRuns{}}
}

func TestLoadMissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Get("random") != nil {
		t.Error("expected nil for missing mode")
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := tempStore(t)
	s.Update("random", 287)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2, err := LoadFrom(s.path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	e := s2.Get("random")
	if e == nil || e.LinesCleared != 287 {
		t.Errorf("got %v, want 287", e)
	}
}

func TestUpdateOnlyRecordsImprovements(t *testing.T) {
	s := tempStore(t)

	if !s.Update("random", 10) {
		t.Error("first run should always be a new best")
	}
	if s.Update("random", 5) {
		t.Error("fewer lines cleared should not beat a higher best")
	}
	if s.Update("random", 10) {
		t.Error("an equal count should not beat the current best")
	}
	if !s.Update("random", 15) {
		t.Error("more lines cleared should beat the current best")
	}
	if s.Get("random").LinesCleared != 15 {
		t.Errorf("got %d, want 15", s.Get("random").LinesCleared)
	}
}

func TestModesAreIndependent(t *testing.T) {
	s := tempStore(t)

	if !s.Update("random", 42) {
		t.Error("first run for random mode should be a new best")
	}
	if !s.Update("7", 12) {
		t.Error("a different seed mode should be independent")
	}
	if s.Update("random", 30) {
		t.Error("fewer lines than the random-mode best should not beat it")
	}
	if !s.Update("random", 50) {
		t.Error("more lines than the random-mode best should beat it")
	}

	if got := s.Get("random").LinesCleared; got != 50 {
		t.Errorf("random mode best = %d, want 50", got)
	}
	if got := s.Get("7").LinesCleared; got != 12 {
		t.Errorf("seed-7 mode best = %d, want 12", got)
	}
}

func TestSaveCreatesDirRecursively(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	s := &Store{path: filepath.Join(dir, "scores.json"), Bests: BestRuns{}}
	s.Update("random", 5000)
	if err := s.Save(); err != nil {
		t.Fatalf("Save with nested dir: %v", err)
	}
	if _, err := os.Stat(s.path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}
