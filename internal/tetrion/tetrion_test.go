package tetrion

import (
	"errors"
	"testing"

	"github.com/herbhall/cli-tetris/internal/playfield"
	"github.com/herbhall/cli-tetris/internal/shapes"
)

func newTestTetrion(cols, rows int) *Tetrion {
	return New(Config{Cols: cols, Rows: rows, Seed: 1})
}

func blockSet(blocks []playfield.Block) map[playfield.Point]bool {
	set := make(map[playfield.Point]bool, len(blocks))
	for _, b := range blocks {
		set[b.Pos] = true
	}
	return set
}

func TestSpawnCentersL(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.SpawnShape(shapes.L, nil, nil, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	got := blockSet(tr.Piece().Blocks())
	want := map[playfield.Point]bool{
		{X: 3, Y: 20}: true,
		{X: 4, Y: 20}: true,
		{X: 5, Y: 20}: true,
		{X: 5, Y: 21}: true,
	}
	if len(got) != 4 {
		t.Fatalf("got %d blocks, want 4: %v", len(got), got)
	}
	for p := range want {
		if !got[p] {
			t.Errorf("missing expected block %v; got %v", p, got)
		}
	}
}

func TestSpawnCentersIAtColumns3To6(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.SpawnShape(shapes.I, nil, nil, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	cols := map[int]bool{}
	for _, b := range tr.Piece().Blocks() {
		cols[b.Pos.X] = true
	}
	for _, c := range []int{3, 4, 5, 6} {
		if !cols[c] {
			t.Errorf("expected I to occupy column %d, got columns %v", c, cols)
		}
	}
}

func TestLockImmediatelyAfterSpawnFailsLockOut(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.SpawnShape(shapes.O, nil, nil, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	if err := tr.Lock(); !errors.Is(err, ErrLockOut) {
		t.Errorf("Lock() = %v, want ErrLockOut", err)
	}
}

func TestDropOneRowThenLockSucceeds(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.SpawnShape(shapes.O, nil, nil, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	if err := tr.SoftDrop(); err != nil {
		t.Fatalf("SoftDrop failed: %v", err)
	}
	if err := tr.Lock(); err != nil {
		t.Errorf("Lock() = %v, want nil (piece broke the visible ceiling)", err)
	}
}

func TestHoldTwiceWithoutLockFails(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.Spawn(); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	if err := tr.Hold(); err != nil {
		t.Fatalf("first Hold failed: %v", err)
	}
	if err := tr.Hold(); !errors.Is(err, ErrCannotHold) {
		t.Errorf("second Hold() = %v, want ErrCannotHold", err)
	}
}

func TestHoldFillsEmptySlotAndSpawnsFromQueue(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.Spawn(); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}
	firstShape := tr.Piece().Shape
	queueHeadBefore := tr.Queue()[0]

	if err := tr.Hold(); err != nil {
		t.Fatalf("Hold failed: %v", err)
	}
	if held := tr.HoldShape(); held == nil || *held != firstShape {
		t.Errorf("hold slot = %v, want %v", held, firstShape)
	}
	if tr.Piece().Shape != queueHeadBefore {
		t.Errorf("after hold, active piece = %v, want queue head %v", tr.Piece().Shape, queueHeadBefore)
	}
	if tr.CanHold() {
		t.Error("CanHold() should be false immediately after a hold")
	}
}

func TestHoldSwapsWhenSlotOccupied(t *testing.T) {
	tr := newTestTetrion(10, 20)
	tr.Spawn()
	first := tr.Piece().Shape
	if err := tr.Hold(); err != nil {
		t.Fatalf("first Hold failed: %v", err)
	}

	tr.HardDrop()
	if err := tr.Lock(); err != nil && !errors.Is(err, ErrLockOut) {
		t.Fatalf("Lock failed: %v", err)
	}
	if err := tr.Spawn(); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	before := tr.Piece().Shape
	if err := tr.Hold(); err != nil {
		t.Fatalf("second Hold failed: %v", err)
	}
	if tr.Piece().Shape != first {
		t.Errorf("expected swapped-in piece to be the originally held shape %v, got %v", first, tr.Piece().Shape)
	}
	if held := tr.HoldShape(); held == nil || *held != before {
		t.Errorf("hold slot = %v, want the piece that was just swapped out (%v)", held, before)
	}
}

func TestORotationHasNoVisibleEffect(t *testing.T) {
	tr := newTestTetrion(10, 20)
	tr.SpawnShape(shapes.O, nil, nil, nil)
	before := blockSet(tr.Piece().Blocks())
	if err := tr.Rotate(true); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	after := blockSet(tr.Piece().Blocks())
	for p := range before {
		if !after[p] {
			t.Errorf("O rotation changed occupied cells: before %v after %v", before, after)
		}
	}
}

func TestHardDropOnSmallFieldThenLock(t *testing.T) {
	tr := newTestTetrion(4, 2)
	x, y := 1, 2
	if err := tr.SpawnShape(shapes.O, &x, &y, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	tr.HardDrop()
	got := blockSet(tr.Piece().Blocks())
	want := map[playfield.Point]bool{
		{X: 1, Y: 0}: true, {X: 2, Y: 0}: true,
		{X: 1, Y: 1}: true, {X: 2, Y: 1}: true,
	}
	for p := range want {
		if !got[p] {
			t.Errorf("after hard drop missing %v, got %v", p, got)
		}
	}
	if err := tr.Lock(); err != nil {
		t.Fatalf("Lock after hard drop failed: %v", err)
	}
	snap := tr.Snapshot(false)
	for p := range want {
		if tile := snap.At(p.X, p.Y); tile == nil {
			t.Errorf("expected locked tile at %v", p)
		}
	}
}

func TestBlockOutWhenSpawnOverlapsStack(t *testing.T) {
	tr := newTestTetrion(10, 20)
	// The default O spawn lands at rows 20-21. Block both so the spawn
	// cannot help but overlap the lock stack.
	fill := make([]string, 20)
	fill[18] = "LLLLLLLLLL" // row 21
	fill[19] = "LLLLLLLLLL" // row 20
	tr.locked.LoadRows(fill)

	if err := tr.SpawnShape(shapes.O, nil, nil, nil); !errors.Is(err, ErrBlockOut) {
		t.Errorf("SpawnShape() = %v, want ErrBlockOut", err)
	}
}

func TestRotateIVerticalAtLeftWallKicks(t *testing.T) {
	tr := newTestTetrion(10, 20)
	// Rotation 1 occupies template column 2, so x=-2 puts the vertical I in
	// column 0; rotating to 2 only fits after the (+2, 0) kick.
	x, y, rot := -2, 10, 1
	if err := tr.SpawnShape(shapes.I, &x, &y, &rot); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	if err := tr.Rotate(true); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
}

func TestQueueHasConfiguredPreviewSize(t *testing.T) {
	tr := New(Config{Cols: 10, Rows: 20, Seed: 3, PreviewSize: 5})
	if len(tr.Queue()) != 5 {
		t.Errorf("len(Queue()) = %d, want 5", len(tr.Queue()))
	}
	tr.Spawn()
	if len(tr.Queue()) != 5 {
		t.Errorf("len(Queue()) after Spawn = %d, want 5", len(tr.Queue()))
	}
}

func TestClearedIncrementsOnLineClear(t *testing.T) {
	tr := newTestTetrion(4, 4)
	// Bottom row has its left two columns filled; an O piece completes it.
	bottom := make([]string, tr.locked.TotalRows())
	bottom[len(bottom)-1] = "LL.."
	tr.locked.LoadRows(bottom)

	if tr.Cleared() != 0 {
		t.Fatalf("Cleared() = %d before any lock, want 0", tr.Cleared())
	}

	x, y := 2, 0
	if err := tr.SpawnShape(shapes.O, &x, &y, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	if err := tr.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if tr.Cleared() == 0 {
		t.Error("Cleared() should have increased once the bottom row filled in")
	}
}

func TestSnapshotGhostProjectsToFloor(t *testing.T) {
	tr := newTestTetrion(10, 20)
	if err := tr.SpawnShape(shapes.O, nil, nil, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	snap := tr.Snapshot(true)
	found := false
	for y := 0; y < snap.TotalRows(); y++ {
		if tile := snap.At(tr.Piece().Pos.X, y); tile != nil && tile.Variant == playfield.Ghost {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one ghost tile in the snapshot")
	}
}

func TestSnapshotWithGroundedPieceDoesNotPanic(t *testing.T) {
	tr := newTestTetrion(4, 2)
	x, y := 1, 0
	if err := tr.SpawnShape(shapes.O, &x, &y, nil); err != nil {
		t.Fatalf("SpawnShape failed: %v", err)
	}
	_ = tr.Snapshot(true)
}
