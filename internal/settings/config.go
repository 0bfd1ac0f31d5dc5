// Package settings persists the engine tunables and cosmetic preferences
// a host program exposes to the player: board geometry, preview size,
// DAS/ARR/lock-delay/gravity timing, garbage hole policy, and theme.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/herbhall/cli-tetris/internal/playfield"
)

// Theme selects the renderer's color scheme.
type Theme string

const (
	ThemeMatrix Theme = "matrix"
	ThemeAmber  Theme = "amber"
	ThemeBlue   Theme = "blue"
	ThemeRed    Theme = "red"
)

// GarbageHolePolicy is the JSON-facing name for a playfield.GarbageHoleMode.
type GarbageHolePolicy string

const (
	GarbageHoleRandom GarbageHolePolicy = "random"
	GarbageHoleFixed  GarbageHolePolicy = "fixed"
)

// Mode converts the persisted policy name into a playfield.GarbageHoleMode.
func (p GarbageHolePolicy) Mode() playfield.GarbageHoleMode {
	if p == GarbageHoleFixed {
		return playfield.GarbageHoleFixed
	}
	return playfield.GarbageHoleRandom
}

// Config stores user preferences and engine tunables persisted to disk.
type Config struct {
	Theme Theme `json:"theme"`

	Cols               int `json:"cols"`
	Rows               int `json:"rows"`
	PreviewSize        int `json:"preview_size"`
	InitialGarbageRows int `json:"initial_garbage_rows"`

	GarbageHolePolicy GarbageHolePolicy `json:"garbage_hole_policy"`
	GarbageHoleColumn int               `json:"garbage_hole_column"`

	MsPerGravityDrop  int `json:"ms_per_gravity_drop"`
	MsPerSoftDropStep int `json:"ms_per_soft_drop_step"`
	MsPerAutoshift    int `json:"ms_per_autoshift"`
	AutoshiftDelayMs  int `json:"autoshift_delay_ms"`
	LockDelayMs       int `json:"lock_delay_ms"`
}

// DefaultConfig returns the standard-guideline tunables (spec.md §4.5).
func DefaultConfig() Config {
	return Config{
		Theme:              ThemeMatrix,
		Cols:               10,
		Rows:               20,
		PreviewSize:        5,
		InitialGarbageRows: 0,
		GarbageHolePolicy:  GarbageHoleRandom,
		GarbageHoleColumn:  0,
		MsPerGravityDrop:   1000,
		MsPerSoftDropStep:  20,
		MsPerAutoshift:     25,
		AutoshiftDelayMs:   133,
		LockDelayMs:        500,
	}
}

// Store manages settings persistence.
type Store struct {
	path   string
	Config Config
}

// Load reads settings from the default location.
func Load() (*Store, error) {
	return LoadFrom("")
}

// LoadFrom reads settings from a specific path. If path is empty, uses
// ~/.cli-tetris/settings.json.
func LoadFrom(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			c := DefaultConfig()
			return &Store{Config: c}, err
		}
		path = filepath.Join(home, ".cli-tetris", "settings.json")
	}

	s := &Store{path: path, Config: DefaultConfig()}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is from UserHomeDir or test-controlled input
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s.Config); err != nil {
		return s, err
	}
	s.normalize()
	return s, nil
}

// Save writes the settings to disk.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.Config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// normalize ensures all config values are valid, falling back to defaults
// for anything a hand-edited settings file gets wrong.
func (s *Store) normalize() {
	d := DefaultConfig()

	switch s.Config.Theme {
	case ThemeMatrix, ThemeAmber, ThemeBlue, ThemeRed:
	default:
		s.Config.Theme = ThemeMatrix
	}
	switch s.Config.GarbageHolePolicy {
	case GarbageHoleRandom, GarbageHoleFixed:
	default:
		s.Config.GarbageHolePolicy = GarbageHoleRandom
	}

	if s.Config.Cols <= 0 {
		s.Config.Cols = d.Cols
	}
	if s.Config.Rows <= 0 {
		s.Config.Rows = d.Rows
	}
	if s.Config.PreviewSize <= 0 {
		s.Config.PreviewSize = d.PreviewSize
	}
	if s.Config.InitialGarbageRows < 0 {
		s.Config.InitialGarbageRows = 0
	}
	if s.Config.GarbageHoleColumn < 0 || s.Config.GarbageHoleColumn >= s.Config.Cols {
		s.Config.GarbageHoleColumn = 0
	}
	if s.Config.MsPerGravityDrop <= 0 {
		s.Config.MsPerGravityDrop = d.MsPerGravityDrop
	}
	if s.Config.MsPerSoftDropStep <= 0 {
		s.Config.MsPerSoftDropStep = d.MsPerSoftDropStep
	}
	if s.Config.MsPerAutoshift <= 0 {
		s.Config.MsPerAutoshift = d.MsPerAutoshift
	}
	if s.Config.AutoshiftDelayMs < 0 {
		s.Config.AutoshiftDelayMs = d.AutoshiftDelayMs
	}
	if s.Config.LockDelayMs < 0 {
		s.Config.LockDelayMs = d.LockDelayMs
	}
}
