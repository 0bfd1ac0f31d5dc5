package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Theme != ThemeMatrix {
		t.Errorf("Theme = %q, want %q", c.Theme, ThemeMatrix)
	}
	if c.Cols != 10 || c.Rows != 20 {
		t.Errorf("board size = %dx%d, want 10x20", c.Cols, c.Rows)
	}
	if c.PreviewSize != 5 {
		t.Errorf("PreviewSize = %d, want 5", c.PreviewSize)
	}
	if c.GarbageHolePolicy != GarbageHoleRandom {
		t.Errorf("GarbageHolePolicy = %q, want %q", c.GarbageHolePolicy, GarbageHoleRandom)
	}
	if c.MsPerGravityDrop != 1000 || c.MsPerSoftDropStep != 20 || c.MsPerAutoshift != 25 ||
		c.AutoshiftDelayMs != 133 || c.LockDelayMs != 500 {
		t.Errorf("timing constants = %+v, want the spec.md §4.5 defaults", c)
	}
}

func TestLoadFromMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom missing file: %v", err)
	}
	if s.Config.Theme != ThemeMatrix {
		t.Errorf("Theme = %q, want default %q", s.Config.Theme, ThemeMatrix)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	s, _ := LoadFrom(path)
	s.Config.Theme = ThemeAmber
	s.Config.Cols = 8
	s.Config.Rows = 16
	s.Config.GarbageHolePolicy = GarbageHoleFixed
	s.Config.GarbageHoleColumn = 3

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if loaded.Config.Theme != ThemeAmber {
		t.Errorf("Theme = %q, want %q", loaded.Config.Theme, ThemeAmber)
	}
	if loaded.Config.Cols != 8 || loaded.Config.Rows != 16 {
		t.Errorf("board size = %dx%d, want 8x16", loaded.Config.Cols, loaded.Config.Rows)
	}
	if loaded.Config.GarbageHolePolicy != GarbageHoleFixed {
		t.Errorf("GarbageHolePolicy = %q, want %q", loaded.Config.GarbageHolePolicy, GarbageHoleFixed)
	}
	if loaded.Config.GarbageHoleColumn != 3 {
		t.Errorf("GarbageHoleColumn = %d, want 3", loaded.Config.GarbageHoleColumn)
	}
}

func TestNormalizeInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	data := []byte(`{
		"theme": "neon",
		"cols": 0,
		"rows": -5,
		"preview_size": 0,
		"garbage_hole_policy": "chaos",
		"garbage_hole_column": 99,
		"ms_per_gravity_drop": 0,
		"lock_delay_ms": -1
	}`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	d := DefaultConfig()
	if s.Config.Theme != ThemeMatrix {
		t.Errorf("Theme = %q, want default %q", s.Config.Theme, ThemeMatrix)
	}
	if s.Config.Cols != d.Cols || s.Config.Rows != d.Rows {
		t.Errorf("board size = %dx%d, want defaults %dx%d", s.Config.Cols, s.Config.Rows, d.Cols, d.Rows)
	}
	if s.Config.PreviewSize != d.PreviewSize {
		t.Errorf("PreviewSize = %d, want default %d", s.Config.PreviewSize, d.PreviewSize)
	}
	if s.Config.GarbageHolePolicy != GarbageHoleRandom {
		t.Errorf("GarbageHolePolicy = %q, want default %q", s.Config.GarbageHolePolicy, GarbageHoleRandom)
	}
	if s.Config.GarbageHoleColumn != 0 {
		t.Errorf("GarbageHoleColumn = %d, want 0 (out of range input reset)", s.Config.GarbageHoleColumn)
	}
	if s.Config.MsPerGravityDrop != d.MsPerGravityDrop {
		t.Errorf("MsPerGravityDrop = %d, want default %d", s.Config.MsPerGravityDrop, d.MsPerGravityDrop)
	}
	if s.Config.LockDelayMs != d.LockDelayMs {
		t.Errorf("LockDelayMs = %d, want default %d", s.Config.LockDelayMs, d.LockDelayMs)
	}
}

func TestGarbageHolePolicyMode(t *testing.T) {
	if GarbageHoleRandom.Mode() != 0 {
		t.Errorf("GarbageHoleRandom.Mode() = %v, want playfield.GarbageHoleRandom", GarbageHoleRandom.Mode())
	}
	if GarbageHoleFixed.Mode() == GarbageHoleRandom.Mode() {
		t.Error("GarbageHoleFixed.Mode() should differ from GarbageHoleRandom.Mode()")
	}
}
