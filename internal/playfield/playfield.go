// Package playfield implements the Tetris grid: storage, placement checks,
// line clearing, and garbage injection. It knows nothing about pieces,
// bags, or timing — only cells and blocks.
package playfield

import (
	"errors"
	"math/rand/v2"

	"github.com/herbhall/cli-tetris/internal/shapes"
)

// Variant distinguishes a rendering-only ghost tile from a real one. Ghost
// tiles never occupy the grid; they exist only in values returned for
// rendering.
type Variant int

const (
	Normal Variant = iota
	Ghost
)

// Tile is either Garbage or a shape's block, tagged with a render variant.
type Tile struct {
	Garbage bool
	Shape   shapes.Name
	Variant Variant
}

// Point is a grid coordinate: x grows right, y grows up, origin bottom-left.
type Point struct {
	X, Y int
}

// Block pairs a position with the tile occupying it.
type Block struct {
	Pos  Point
	Tile Tile
}

// ErrInvalidPlacement is returned by AddBlock/AddBlocks when a block's
// position is out of range or already occupied. It is an internal signal
// consumed by the tetrion package; hosts never see it directly.
var ErrInvalidPlacement = errors.New("playfield: invalid placement")

// GarbageHoleMode selects how AddGarbage picks the gap column for each
// injected row (spec.md §9, Open Question 1).
type GarbageHoleMode int

const (
	// GarbageHoleRandom draws an independent random column per row. This
	// is the default and matches standard guideline behavior.
	GarbageHoleRandom GarbageHoleMode = iota
	// GarbageHoleFixed always leaves the same configured column open.
	GarbageHoleFixed
)

// Playfield is a total_rows x cols grid of optional tiles plus the
// bookkeeping needed to inject garbage deterministically.
type Playfield struct {
	cols, rows, totalRows int
	grid                  [][]*Tile

	holeMode   GarbageHoleMode
	holeCol    int
	garbageRNG *rand.Rand
}

// Empty returns a new playfield with the given visible row count and
// column count. The vanish zone above the visible area is
// max(rows, 20) rows, so total_rows is always at least 2*rows.
func Empty(cols, rows int) *Playfield {
	return EmptySeeded(cols, rows, 0)
}

// EmptySeeded is Empty with an explicit garbage RNG seed, for deterministic
// replay of matches that include garbage injection.
func EmptySeeded(cols, rows int, seed uint64) *Playfield {
	vanish := rows
	if vanish < 20 {
		vanish = 20
	}
	total := rows + vanish

	grid := make([][]*Tile, total)
	for i := range grid {
		grid[i] = make([]*Tile, cols)
	}
	return &Playfield{
		cols:       cols,
		rows:       rows,
		totalRows:  total,
		grid:       grid,
		holeMode:   GarbageHoleRandom,
		holeCol:    cols - 1,
		garbageRNG: rand.New(rand.NewPCG(seed, seed^0xD1B54A32D192ED03)),
	}
}

// Cols returns the column count.
func (p *Playfield) Cols() int { return p.cols }

// Rows returns the visible row count.
func (p *Playfield) Rows() int { return p.rows }

// TotalRows returns rows plus the vanish zone.
func (p *Playfield) TotalRows() int { return p.totalRows }

// SetGarbageHoleMode configures how AddGarbage picks its gap column.
// fixedCol is only used when mode is GarbageHoleFixed.
func (p *Playfield) SetGarbageHoleMode(mode GarbageHoleMode, fixedCol int) {
	p.holeMode = mode
	p.holeCol = fixedCol
}

// Clone returns a copy with its own grid, so blocks can be added to or
// cleared from it without mutating the original (spec.md §9: cheap value
// semantics without exposing mutation externally). The garbage RNG is
// shared with the original: AddGarbage on either advances the same hole
// sequence.
func (p *Playfield) Clone() *Playfield {
	c := &Playfield{
		cols:       p.cols,
		rows:       p.rows,
		totalRows:  p.totalRows,
		grid:       make([][]*Tile, p.totalRows),
		holeMode:   p.holeMode,
		holeCol:    p.holeCol,
		garbageRNG: p.garbageRNG,
	}
	for y, row := range p.grid {
		newRow := make([]*Tile, p.cols)
		copy(newRow, row)
		c.grid[y] = newRow
	}
	return c
}

// inBounds reports whether (x, y) lies within the grid.
func (p *Playfield) inBounds(pt Point) bool {
	return pt.X >= 0 && pt.X < p.cols && pt.Y >= 0 && pt.Y < p.totalRows
}

// CanPlace reports whether every block is in range and lands on an empty
// cell. Ghost blocks are never consulted by callers of this package; the
// function itself has no notion of "ghost" at all — that distinction lives
// entirely in which blocks the tetrion chooses to pass in.
func (p *Playfield) CanPlace(blocks []Block) bool {
	for _, b := range blocks {
		if !p.inBounds(b.Pos) {
			return false
		}
		if p.grid[b.Pos.Y][b.Pos.X] != nil {
			return false
		}
	}
	return true
}

// AddBlock places a single block, failing with ErrInvalidPlacement if it
// does not fit.
func (p *Playfield) AddBlock(b Block) error {
	return p.AddBlocks([]Block{b})
}

// AddBlocks places every block atomically: either all of them land, or
// none do.
func (p *Playfield) AddBlocks(blocks []Block) error {
	if !p.CanPlace(blocks) {
		return ErrInvalidPlacement
	}
	for _, b := range blocks {
		tile := b.Tile
		p.grid[b.Pos.Y][b.Pos.X] = &tile
	}
	return nil
}

// AddBlocksBestEffort places every block that fits and silently skips the
// rest. This is used only by the renderer to overlay the ghost piece; it
// must never be used for blocks that participate in game rules.
func (p *Playfield) AddBlocksBestEffort(blocks []Block) {
	for _, b := range blocks {
		if p.inBounds(b.Pos) && p.grid[b.Pos.Y][b.Pos.X] == nil {
			tile := b.Tile
			p.grid[b.Pos.Y][b.Pos.X] = &tile
		}
	}
}

// AddGarbage prepends n garbage rows at the bottom, shifting existing
// content up and discarding whatever falls off the top. Each row is full
// of Garbage tiles except one hole, chosen per p's GarbageHoleMode.
func (p *Playfield) AddGarbage(n int) {
	if n <= 0 {
		return
	}
	if n > p.totalRows {
		n = p.totalRows
	}

	for y := p.totalRows - 1; y >= n; y-- {
		p.grid[y] = p.grid[y-n]
	}
	for y := 0; y < n; y++ {
		p.grid[y] = p.garbageRow()
	}
}

func (p *Playfield) garbageRow() []*Tile {
	hole := p.holeCol
	if p.holeMode == GarbageHoleRandom {
		hole = p.garbageRNG.IntN(p.cols)
	}
	row := make([]*Tile, p.cols)
	for x := 0; x < p.cols; x++ {
		if x == hole {
			continue
		}
		row[x] = &Tile{Garbage: true}
	}
	return row
}

// ClearLines removes every full row, preserves the relative order of
// survivors, and prepends empty rows on top so TotalRows is unchanged. It
// returns the number of rows removed.
func (p *Playfield) ClearLines() int {
	survivors := make([][]*Tile, 0, p.totalRows)
	cleared := 0
	for y := 0; y < p.totalRows; y++ {
		if p.rowFull(y) {
			cleared++
			continue
		}
		survivors = append(survivors, p.grid[y])
	}
	if cleared == 0 {
		return 0
	}

	newGrid := make([][]*Tile, p.totalRows)
	copy(newGrid[0:], survivors)
	for y := len(survivors); y < p.totalRows; y++ {
		newGrid[y] = make([]*Tile, p.cols)
	}
	p.grid = newGrid
	return cleared
}

func (p *Playfield) rowFull(y int) bool {
	for x := 0; x < p.cols; x++ {
		if p.grid[y][x] == nil {
			return false
		}
	}
	return true
}

// Blocks enumerates every occupied cell.
func (p *Playfield) Blocks() []Block {
	var out []Block
	for y := 0; y < p.totalRows; y++ {
		for x := 0; x < p.cols; x++ {
			if t := p.grid[y][x]; t != nil {
				out = append(out, Block{Pos: Point{X: x, Y: y}, Tile: *t})
			}
		}
	}
	return out
}

// At returns the tile at (x, y), or nil if empty. Renderer-facing.
func (p *Playfield) At(x, y int) *Tile {
	if x < 0 || x >= p.cols || y < 0 || y >= p.totalRows {
		return nil
	}
	if t := p.grid[y][x]; t != nil {
		cp := *t
		return &cp
	}
	return nil
}
