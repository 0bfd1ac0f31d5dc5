// Package tetrion implements the discrete, timeless Tetris rule engine:
// active piece, lock stack, preview queue, hold slot, SRS kicks, and
// spawn/lock/line-clear rules. Every public operation either mutates the
// Tetrion and returns nil, or leaves it unchanged and returns a typed
// error from the taxonomy in errors.go.
package tetrion

import (
	"github.com/herbhall/cli-tetris/internal/bag"
	"github.com/herbhall/cli-tetris/internal/playfield"
	"github.com/herbhall/cli-tetris/internal/shapes"
)

// DefaultPreviewSize is the default length of the upcoming-shapes queue.
const DefaultPreviewSize = 5

// Piece is the active, falling tetromino: a position offset plus a shape
// and rotation state. It is a value, not a pointer, so callers can compare
// and copy it cheaply.
type Piece struct {
	Pos      playfield.Point
	Shape    shapes.Name
	Rotation int
}

// Blocks returns the piece's four absolute board cells.
func (p Piece) Blocks() []playfield.Block {
	offsets := shapes.Blocks(p.Shape, p.Rotation)
	out := make([]playfield.Block, 4)
	for i, off := range offsets {
		out[i] = playfield.Block{
			Pos:  playfield.Point{X: p.Pos.X + off.X, Y: p.Pos.Y + off.Y},
			Tile: playfield.Tile{Shape: p.Shape, Variant: playfield.Normal},
		}
	}
	return out
}

// Config configures a new Tetrion.
type Config struct {
	Cols, Rows         int
	PreviewSize        int
	Seed               uint64
	InitialGarbageRows int
	GarbageHoleMode    playfield.GarbageHoleMode
	GarbageHoleColumn  int
}

// Tetrion is the discrete Tetris state machine. The zero value is not
// usable; construct with New.
type Tetrion struct {
	piece   *Piece
	locked  *playfield.Playfield
	bag     *bag.Bag
	queue   []shapes.Name
	hold    *shapes.Name
	canHold bool
	cleared uint64

	cols, rows, previewSize int
}

// New constructs an empty Tetrion: no active piece, an empty lock stack
// (plus any configured initial garbage), and a full preview queue drawn
// from a bag seeded by cfg.Seed.
func New(cfg Config) *Tetrion {
	if cfg.PreviewSize <= 0 {
		cfg.PreviewSize = DefaultPreviewSize
	}

	locked := playfield.EmptySeeded(cfg.Cols, cfg.Rows, cfg.Seed)
	locked.SetGarbageHoleMode(cfg.GarbageHoleMode, cfg.GarbageHoleColumn)
	if cfg.InitialGarbageRows > 0 {
		locked.AddGarbage(cfg.InitialGarbageRows)
	}

	t := &Tetrion{
		locked:      locked,
		bag:         bag.New(cfg.Seed),
		cols:        cfg.Cols,
		rows:        cfg.Rows,
		previewSize: cfg.PreviewSize,
	}
	t.queue = make([]shapes.Name, cfg.PreviewSize)
	for i := range t.queue {
		t.queue[i] = t.bag.Next()
	}
	return t
}

// Cleared returns the cumulative count of cleared lines since creation.
func (t *Tetrion) Cleared() uint64 { return t.cleared }

// Queue returns a copy of the upcoming shapes, head first.
func (t *Tetrion) Queue() []shapes.Name {
	out := make([]shapes.Name, len(t.queue))
	copy(out, t.queue)
	return out
}

// HoldShape returns the held shape, or nil if the hold slot is empty.
func (t *Tetrion) HoldShape() *shapes.Name {
	if t.hold == nil {
		return nil
	}
	h := *t.hold
	return &h
}

// CanHold reports whether Hold() may currently be called successfully.
func (t *Tetrion) CanHold() bool { return t.canHold }

// Piece returns the active piece, or nil if none is falling (between a
// lock and the next spawn).
func (t *Tetrion) Piece() *Piece {
	if t.piece == nil {
		return nil
	}
	p := *t.piece
	return &p
}

// AddGarbage injects n garbage rows into the lock stack.
func (t *Tetrion) AddGarbage(n int) {
	t.locked.AddGarbage(n)
}

// SpawnShape creates a new active piece of the given shape. If x, y or rot
// are nil, spec.md §4.4.2's centering rule picks them. It fails with
// ErrBlockOut if the resulting blocks overlap the lock stack.
func (t *Tetrion) SpawnShape(shape shapes.Name, x, y, rot *int) error {
	rotation := 0
	if rot != nil {
		rotation = *rot
	}

	minX, maxX, minY, _ := shapes.Extent(shape, rotation)
	width := maxX - minX + 1

	px := 0
	if x != nil {
		px = *x
	} else {
		leftmost := (t.cols - width) / 2
		px = leftmost - minX
	}

	py := 0
	if y != nil {
		py = *y
	} else {
		py = t.rows - minY
	}

	candidate := Piece{Pos: playfield.Point{X: px, Y: py}, Shape: shape, Rotation: rotation}
	if !t.locked.CanPlace(candidate.Blocks()) {
		return ErrBlockOut
	}
	t.piece = &candidate
	return nil
}

// Spawn spawns the queue head (centered), then pops it, refills the queue
// from the bag, and resets the hold gate for the new piece. On a failed
// spawn (block-out) neither the queue nor the bag is touched.
func (t *Tetrion) Spawn() error {
	next := t.queue[0]
	if err := t.SpawnShape(next, nil, nil, nil); err != nil {
		return err
	}
	t.queue = append(t.queue[1:], t.bag.Next())
	t.canHold = true
	return nil
}

// Move shifts the active piece by (dx, dy), failing with ErrCannotMove if
// the new position would overlap the lock stack or leave the field.
func (t *Tetrion) Move(dx, dy int) error {
	if t.piece == nil {
		return ErrCannotMove
	}
	candidate := *t.piece
	candidate.Pos.X += dx
	candidate.Pos.Y += dy
	if !t.locked.CanPlace(candidate.Blocks()) {
		return ErrCannotMove
	}
	t.piece = &candidate
	return nil
}

// Left moves the piece one column left.
func (t *Tetrion) Left() error { return t.Move(-1, 0) }

// Right moves the piece one column right.
func (t *Tetrion) Right() error { return t.Move(1, 0) }

// SoftDrop moves the piece one row down.
func (t *Tetrion) SoftDrop() error { return t.Move(0, -1) }

// HardDrop repeatedly drops the piece until it cannot move further. It
// never itself fails; it returns the number of rows dropped.
func (t *Tetrion) HardDrop() int {
	rows := 0
	for t.Move(0, -1) == nil {
		rows++
	}
	return rows
}

// Rotate attempts a single quarter-turn (clockwise if cw, counterclockwise
// otherwise), trying SRS kick candidates in order (spec.md §4.4.1).
func (t *Tetrion) Rotate(cw bool) error {
	if t.piece == nil {
		return ErrCannotRotate
	}
	from := t.piece.Rotation
	to := from + 1
	if !cw {
		to = from - 1
	}
	to = ((to % 4) + 4) % 4

	if t.tryRotationTo(to) {
		return nil
	}
	return ErrCannotRotate
}

// Rotate180 attempts a 180 degree turn. Standard SRS defines no kick table
// for this; per spec.md §4.4.1 and Open Question 3, two strategies are
// tried in order: the identity placement, then two successive single
// quarter-turns (each with its own kick search).
func (t *Tetrion) Rotate180() error {
	if t.piece == nil {
		return ErrCannotRotate
	}
	to := (t.piece.Rotation + 2) % 4

	candidate := *t.piece
	candidate.Rotation = to
	if t.locked.CanPlace(candidate.Blocks()) {
		t.piece = &candidate
		return nil
	}

	saved := *t.piece
	if t.Rotate(true) == nil && t.Rotate(true) == nil {
		return nil
	}
	t.piece = &saved
	return ErrCannotRotate
}

// tryRotationTo attempts to rotate the active piece to rotation `to` (a
// single quarter step away from its current rotation), trying each SRS
// kick candidate in order. Returns true and commits the new piece on the
// first candidate that fits.
func (t *Tetrion) tryRotationTo(to int) bool {
	from := t.piece.Rotation
	for _, off := range shapes.KickOffsets(t.piece.Shape, from, to) {
		candidate := *t.piece
		candidate.Rotation = to
		candidate.Pos.X += off.X
		candidate.Pos.Y += off.Y
		if t.locked.CanPlace(candidate.Blocks()) {
			t.piece = &candidate
			return true
		}
	}
	return false
}

// Grounded reports whether the active piece cannot move down any further.
// It never mutates state; the driver uses it to decide, every tick,
// whether the lock-delay clock applies (spec.md §4.5).
func (t *Tetrion) Grounded() bool {
	if t.piece == nil {
		return false
	}
	candidate := *t.piece
	candidate.Pos.Y--
	return !t.locked.CanPlace(candidate.Blocks())
}

// Lock commits the active piece into the lock stack, clears full lines,
// updates Cleared, and clears the active piece. It fails with ErrLockOut
// if every one of the piece's cells was in the vanish zone.
func (t *Tetrion) Lock() error {
	if t.piece == nil {
		return ErrCannotMove
	}
	blocks := t.piece.Blocks()

	minY := blocks[0].Pos.Y
	for _, b := range blocks[1:] {
		if b.Pos.Y < minY {
			minY = b.Pos.Y
		}
	}
	if minY >= t.rows {
		return ErrLockOut
	}

	if err := t.locked.AddBlocks(blocks); err != nil {
		return ErrLockOut
	}
	t.cleared += uint64(t.locked.ClearLines())
	t.piece = nil
	return nil
}

// Hold swaps the active piece with the hold slot (spec.md §4.4.4). If the
// hold slot is empty, it is filled with the current shape and the next
// piece is spawned from the queue; otherwise the held shape is spawned and
// the current shape takes its place, without touching the queue.
func (t *Tetrion) Hold() error {
	if !t.canHold {
		return ErrCannotHold
	}
	if t.piece == nil {
		return ErrCannotHold
	}

	current := t.piece.Shape
	if t.hold == nil {
		if err := t.Spawn(); err != nil {
			return err
		}
		t.hold = &current
		t.canHold = false
		return nil
	}

	swap := *t.hold
	if err := t.SpawnShape(swap, nil, nil, nil); err != nil {
		return err
	}
	t.hold = &current
	t.canHold = false
	return nil
}

// Snapshot returns a playfield equal to the lock stack with the active
// piece's blocks overlaid as Normal tiles. When includeGhost is true, the
// cells the piece would occupy after a hard drop are also overlaid, as
// Ghost tiles, via best-effort insertion so they never displace real
// blocks or the active piece itself. The lock stack itself is never
// mutated: this is always a defensive clone (spec.md §5: snapshots are
// values a renderer must not retain past the next operation).
func (t *Tetrion) Snapshot(includeGhost bool) *playfield.Playfield {
	snap := t.locked.Clone()
	if t.piece == nil {
		return snap
	}

	// The active piece is added first, with a strict AddBlocks: by
	// invariant it never overlaps the lock stack, so this cannot fail.
	// The ghost projection is added afterwards, best-effort, so it can
	// never displace the piece's own cells where the two coincide.
	_ = snap.AddBlocks(t.piece.Blocks())

	if includeGhost {
		ghost := *t.piece
		for {
			next := ghost
			next.Pos.Y--
			if !t.locked.CanPlace(next.Blocks()) {
				break
			}
			ghost = next
		}
		ghostBlocks := ghost.Blocks()
		for i := range ghostBlocks {
			ghostBlocks[i].Tile.Variant = playfield.Ghost
		}
		snap.AddBlocksBestEffort(ghostBlocks)
	}

	return snap
}
