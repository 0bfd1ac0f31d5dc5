// Package shapes holds the immutable tetromino lookup tables: per-rotation
// block offsets and the SRS wall-kick candidate lists. Everything here is
// computed once, at package init, and never mutated.
package shapes

import "fmt"

// Name identifies a tetromino shape.
type Name int

const (
	L Name = iota
	J
	S
	Z
	O
	I
	T
)

// Names lists every shape in a fixed, deterministic order (used by the bag).
var Names = [7]Name{L, J, S, Z, O, I, T}

func (n Name) String() string {
	switch n {
	case L:
		return "L"
	case J:
		return "J"
	case S:
		return "S"
	case Z:
		return "Z"
	case O:
		return "O"
	case I:
		return "I"
	case T:
		return "T"
	default:
		return "?"
	}
}

// Point is an (x, y) offset, x growing right and y growing up.
type Point struct {
	X, Y int
}

// Color is an RGB triple, carried through Tile's shape name for renderers.
type Color struct {
	R, G, B uint8
}

// colors is the shape color contract from spec.md §6.
var colors = map[Name]Color{
	L:       {255, 128, 0},
	J:       {0, 132, 255},
	S:       {0, 217, 51},
	Z:       {245, 7, 7},
	T:       {205, 7, 245},
	I:       {0, 247, 255},
	O:       {242, 235, 12},
	garbage: {156, 154, 154},
}

// garbage is a pseudo-Name used only to key the Garbage tile's color; it is
// never a valid ShapeName in the {L,J,S,Z,O,I,T} set and shapeTemplates has
// no entry for it.
const garbage Name = -1

// GarbageColor returns the renderer color for Garbage tiles.
func GarbageColor() Color { return colors[garbage] }

// Color returns the renderer color for a shape.
func (n Name) Color() Color { return colors[n] }

// rotation is the four-cell offset set for one rotation state of one shape.
type rotation [4]Point

// shapeTemplates holds, for each shape, its four canonical rotation states.
// Each shape rotates within a fixed bounding box (O: 2x2, I: 4x4, the rest:
// 3x3) so offsets stay non-negative and SRS kicks translate consistently
// between states. Rotation index 0 is the spawn orientation; indices
// increase clockwise.
var shapeTemplates = map[Name][4]rotation{
	O: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	I: {
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{2, 3}, {2, 2}, {2, 1}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{1, 3}, {1, 2}, {1, 1}, {1, 0}},
	},
	T: {
		{{1, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {1, 1}, {2, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 0}},
		{{0, 1}, {1, 2}, {1, 1}, {1, 0}},
	},
	S: {
		{{1, 2}, {2, 2}, {0, 1}, {1, 1}},
		{{1, 2}, {1, 1}, {2, 1}, {2, 0}},
		{{1, 1}, {2, 1}, {0, 0}, {1, 0}},
		{{0, 2}, {0, 1}, {1, 1}, {1, 0}},
	},
	Z: {
		{{0, 2}, {1, 2}, {1, 1}, {2, 1}},
		{{2, 2}, {1, 1}, {2, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {1, 0}, {2, 0}},
		{{1, 2}, {0, 1}, {1, 1}, {0, 0}},
	},
	J: {
		{{0, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {2, 2}, {1, 1}, {1, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 0}},
		{{1, 2}, {1, 1}, {0, 0}, {1, 0}},
	},
	L: {
		{{2, 2}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 2}, {1, 1}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 0}},
		{{0, 2}, {1, 2}, {1, 1}, {1, 0}},
	},
}

// Blocks returns the cell offsets for shape at the given rotation. Rotation
// is taken modulo 4.
func Blocks(name Name, rotation int) [4]Point {
	t, ok := shapeTemplates[name]
	if !ok {
		panic(fmt.Sprintf("shapes: unknown shape %v", name))
	}
	return t[((rotation%4)+4)%4]
}

// Extent returns the inclusive min/max x and y actually occupied by a
// shape at the given rotation. Used by spawn centering (spec.md §4.4.2):
// unlike the shape's fixed bounding box, this can be narrower than the box
// (e.g. the I piece's vertical states are one column wide).
func Extent(name Name, rotation int) (minX, maxX, minY, maxY int) {
	blocks := Blocks(name, rotation)
	minX, maxX = blocks[0].X, blocks[0].X
	minY, maxY = blocks[0].Y, blocks[0].Y
	for _, b := range blocks[1:] {
		if b.X < minX {
			minX = b.X
		}
		if b.X > maxX {
			maxX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
		if b.Y > maxY {
			maxY = b.Y
		}
	}
	return minX, maxX, minY, maxY
}
