// Package tetris wraps a tetrion.Tetrion with the time axis: it translates
// held keys into DAS/ARR shifts, applies gravity and soft drop, and
// enforces lock delay, turning the discrete rules engine into something a
// real-time host can drive tick by tick.
package tetris

import (
	"github.com/herbhall/cli-tetris/internal/playfield"
	"github.com/herbhall/cli-tetris/internal/shapes"
	"github.com/herbhall/cli-tetris/internal/tetrion"
)

// Key identifies one of the three keys the driver tracks for DAS/ARR and
// soft-drop cadence.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyDown
)

// ticksRingSize bounds the window fps_estimate averages over.
const ticksRingSize = 32

// Config configures a Driver's Tetrion and its timing constants. Zero
// values for the timing fields fall back to the spec.md §4.5 defaults.
type Config struct {
	Cols, Rows         int
	PreviewSize        int
	Seed               uint64
	InitialGarbageRows int
	GarbageHoleMode    playfield.GarbageHoleMode
	GarbageHoleColumn  int

	MsPerGravityDrop  uint64
	MsPerSoftDropStep uint64
	MsPerAutoshift    uint64
	AutoshiftDelayMs  uint64
	LockDelayMs       uint64
}

func (c *Config) withDefaults() {
	if c.MsPerGravityDrop == 0 {
		c.MsPerGravityDrop = 1000
	}
	if c.MsPerSoftDropStep == 0 {
		c.MsPerSoftDropStep = 20
	}
	if c.MsPerAutoshift == 0 {
		c.MsPerAutoshift = 25
	}
	if c.AutoshiftDelayMs == 0 {
		c.AutoshiftDelayMs = 133
	}
	if c.LockDelayMs == 0 {
		c.LockDelayMs = 500
	}
}

type keyState struct {
	pressed      bool
	lastChangeMs uint64
	lastPressMs  uint64
}

// Driver is the timed wrapper around a Tetrion. The zero value is not
// usable; construct with New.
type Driver struct {
	tetrion *tetrion.Tetrion
	cfg     Config

	keys map[Key]*keyState

	tDropMs      uint64
	tAutoshiftMs uint64
	tLockMs      uint64

	ticks []uint64

	lastTickMs uint64

	gameOver error
}

// New constructs a Driver at time startMs, spawning its first piece.
func New(startMs uint64, cfg Config) *Driver {
	cfg.withDefaults()

	tr := tetrion.New(tetrion.Config{
		Cols:               cfg.Cols,
		Rows:               cfg.Rows,
		PreviewSize:        cfg.PreviewSize,
		Seed:               cfg.Seed,
		InitialGarbageRows: cfg.InitialGarbageRows,
		GarbageHoleMode:    cfg.GarbageHoleMode,
		GarbageHoleColumn:  cfg.GarbageHoleColumn,
	})

	d := &Driver{
		tetrion: tr,
		cfg:     cfg,
		keys: map[Key]*keyState{
			KeyLeft:  {},
			KeyRight: {},
			KeyDown:  {},
		},
		tDropMs:      startMs,
		tAutoshiftMs: startMs,
		tLockMs:      startMs,
		lastTickMs:   startMs,
	}

	if err := tr.Spawn(); err != nil && tetrion.GameOver(err) {
		d.gameOver = err
	}
	return d
}

// GameOver returns the terminal error that ended the match, or nil.
func (d *Driver) GameOver() error { return d.gameOver }

// Playfield returns a snapshot of the lock stack with the active piece (and
// optionally its ghost) overlaid.
func (d *Driver) Playfield(includeGhost bool) *playfield.Playfield {
	return d.tetrion.Snapshot(includeGhost)
}

// Queue returns the upcoming shapes, head first.
func (d *Driver) Queue() []shapes.Name { return d.tetrion.Queue() }

// HeldShape returns the held shape, or nil if the hold slot is empty.
func (d *Driver) HeldShape() *shapes.Name { return d.tetrion.HoldShape() }

// Cleared returns the cumulative lines-cleared count.
func (d *Driver) Cleared() uint64 { return d.tetrion.Cleared() }

// FPSEstimate returns an observed tick rate computed from the tick ring.
func (d *Driver) FPSEstimate() float64 {
	if len(d.ticks) < 2 {
		return 0
	}
	span := d.ticks[len(d.ticks)-1] - d.ticks[0]
	if span == 0 {
		return 0
	}
	return float64(len(d.ticks)-1) * 1000 / float64(span)
}

func (d *Driver) setGameOver(err error) {
	if d.gameOver == nil {
		d.gameOver = err
	}
}

// --- directional events ---

func (d *Driver) LeftPressed(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyLeft].pressed = true
	d.keys[KeyLeft].lastChangeMs = ms
	d.keys[KeyLeft].lastPressMs = ms
	if d.tetrion.Left() == nil {
		d.tLockMs = ms
	}
}

func (d *Driver) LeftReleased(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyLeft].pressed = false
	d.keys[KeyLeft].lastChangeMs = ms
}

func (d *Driver) RightPressed(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyRight].pressed = true
	d.keys[KeyRight].lastChangeMs = ms
	d.keys[KeyRight].lastPressMs = ms
	if d.tetrion.Right() == nil {
		d.tLockMs = ms
	}
}

func (d *Driver) RightReleased(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyRight].pressed = false
	d.keys[KeyRight].lastChangeMs = ms
}

// SoftDropPressed records the key and arranges for the very next tick to
// drop exactly one row before normal soft-drop cadence resumes.
func (d *Driver) SoftDropPressed(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyDown].pressed = true
	d.keys[KeyDown].lastChangeMs = ms
	if ms >= d.cfg.MsPerSoftDropStep {
		d.tDropMs = ms - d.cfg.MsPerSoftDropStep
	} else {
		d.tDropMs = 0
	}
}

func (d *Driver) SoftDropReleased(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.keys[KeyDown].pressed = false
	d.keys[KeyDown].lastChangeMs = ms
}

// --- rotation / drop / hold events ---

func (d *Driver) RotateCw(ms uint64) {
	if d.gameOver != nil {
		return
	}
	if d.tetrion.Rotate(true) == nil {
		d.tLockMs = ms
	}
}

func (d *Driver) RotateCcw(ms uint64) {
	if d.gameOver != nil {
		return
	}
	if d.tetrion.Rotate(false) == nil {
		d.tLockMs = ms
	}
}

func (d *Driver) Rotate180(ms uint64) {
	if d.gameOver != nil {
		return
	}
	if d.tetrion.Rotate180() == nil {
		d.tLockMs = ms
	}
}

// HardDrop slams the piece down, locks it, and spawns the next one.
// Failure of either step is game-over.
func (d *Driver) HardDrop(ms uint64) {
	if d.gameOver != nil {
		return
	}
	d.tetrion.HardDrop()
	if err := d.tetrion.Lock(); err != nil {
		d.setGameOver(err)
		return
	}
	if err := d.tetrion.Spawn(); err != nil {
		d.setGameOver(err)
		return
	}
	d.tDropMs = ms
	d.tLockMs = ms
}

// Hold swaps the active piece with the hold slot. CannotHold is swallowed;
// a BlockOut raised by the induced spawn is game-over.
func (d *Driver) Hold(ms uint64) {
	if d.gameOver != nil {
		return
	}
	err := d.tetrion.Hold()
	if err == nil {
		d.tDropMs = ms
		d.tLockMs = ms
		return
	}
	if tetrion.GameOver(err) {
		d.setGameOver(err)
	}
}

// Tick advances gravity/soft-drop and auto-shift to time ms (spec.md §4.5).
// A ms older than the previous tick, or than any timestamp an event has
// since recorded (drop, lock or key-press time), is clamped up to the latest
// of them: the tick arithmetic subtracts those stored timestamps from ms in
// unsigned arithmetic, so an out-of-order ms would underflow instead of
// simply being a no-op tick.
func (d *Driver) Tick(ms uint64) {
	if d.gameOver != nil {
		return
	}
	floor := d.lastTickMs
	for _, t := range []uint64{d.tDropMs, d.tLockMs, d.keys[KeyLeft].lastPressMs, d.keys[KeyRight].lastPressMs} {
		if t > floor {
			floor = t
		}
	}
	if ms < floor {
		ms = floor
	}
	d.lastTickMs = ms
	d.pushTick(ms)
	d.tickGravity(ms)
	if d.gameOver != nil {
		return
	}
	d.tickAutoshift(ms)
}

func (d *Driver) pushTick(ms uint64) {
	if len(d.ticks) < ticksRingSize {
		d.ticks = append(d.ticks, ms)
		return
	}
	copy(d.ticks, d.ticks[1:])
	d.ticks[len(d.ticks)-1] = ms
}

func (d *Driver) tickGravity(ms uint64) {
	rate := d.cfg.MsPerGravityDrop
	if d.keys[KeyDown].pressed {
		rate = d.cfg.MsPerSoftDropStep
	}

	n := (ms - d.tDropMs) / rate
	d.tDropMs += n * rate

	for i := uint64(0); i < n; i++ {
		if d.tetrion.SoftDrop() != nil {
			break
		}
		d.tLockMs = ms
	}

	// The lock-delay clock is checked every tick once the piece is
	// resting, independent of the gravity cadence above: otherwise a
	// slow gravity rate (e.g. the default 1000ms) would make lock delay
	// (e.g. 500ms) effectively unreachable between gravity steps.
	if !d.tetrion.Grounded() {
		return
	}
	if ms-d.tLockMs <= d.cfg.LockDelayMs {
		return
	}
	if err := d.tetrion.Lock(); err != nil {
		d.setGameOver(err)
		return
	}
	if err := d.tetrion.Spawn(); err != nil {
		d.setGameOver(err)
		return
	}
	d.tDropMs = ms
	d.tLockMs = ms
}

func (d *Driver) tickAutoshift(ms uint64) {
	left, right := d.keys[KeyLeft], d.keys[KeyRight]
	if !left.pressed && !right.pressed {
		return
	}

	dir := KeyLeft
	dirLastPress := left.lastPressMs
	switch {
	case left.pressed && right.pressed:
		if right.lastPressMs > left.lastPressMs {
			dir, dirLastPress = KeyRight, right.lastPressMs
		}
	case right.pressed:
		dir, dirLastPress = KeyRight, right.lastPressMs
	}

	if ms-dirLastPress <= d.cfg.AutoshiftDelayMs {
		return
	}

	base := d.tAutoshiftMs
	if floor := dirLastPress + d.cfg.AutoshiftDelayMs; floor > base {
		base = floor
	}
	k := (ms - base) / d.cfg.MsPerAutoshift
	d.tAutoshiftMs = base + k*d.cfg.MsPerAutoshift

	for i := uint64(0); i < k; i++ {
		var err error
		if dir == KeyLeft {
			err = d.tetrion.Left()
		} else {
			err = d.tetrion.Right()
		}
		if err != nil {
			break
		}
		d.tLockMs = ms
	}
}
