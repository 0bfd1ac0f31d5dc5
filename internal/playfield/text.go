package playfield

import (
	"strings"

	"github.com/herbhall/cli-tetris/internal/shapes"
)

// letterToShape maps the single-letter text format (spec.md §6) to a shape.
var letterToShape = map[byte]shapes.Name{
	'L': shapes.L,
	'J': shapes.J,
	'S': shapes.S,
	'Z': shapes.Z,
	'T': shapes.T,
	'I': shapes.I,
	'O': shapes.O,
}

var shapeToLetter = map[shapes.Name]byte{
	shapes.L: 'L',
	shapes.J: 'J',
	shapes.S: 'S',
	shapes.Z: 'Z',
	shapes.T: 'T',
	shapes.I: 'I',
	shapes.O: 'O',
}

// LoadRows fills a playfield from a top-to-bottom (high-y to low-y) list of
// row strings, as used throughout the test suite: '.' empty, a shape
// letter a Normal tile of that shape, 'G' Garbage. Rows are written
// starting at the playfield's topmost row, so a short `rows` slice only
// populates the top of the field.
func (p *Playfield) LoadRows(rows []string) {
	for i, line := range rows {
		y := p.totalRows - 1 - i
		if y < 0 {
			break
		}
		for x := 0; x < p.cols && x < len(line); x++ {
			switch c := line[x]; c {
			case '.':
				p.grid[y][x] = nil
			case 'G':
				p.grid[y][x] = &Tile{Garbage: true}
			default:
				if name, ok := letterToShape[c]; ok {
					p.grid[y][x] = &Tile{Shape: name, Variant: Normal}
				}
			}
		}
	}
}

// RowStrings renders the playfield back into the same top-to-bottom text
// format LoadRows consumes, over the given row range [fromY, toY]
// inclusive, visited high-to-low.
func (p *Playfield) RowStrings(fromY, toY int) []string {
	out := make([]string, 0, fromY-toY+1)
	for y := fromY; y >= toY; y-- {
		var sb strings.Builder
		for x := 0; x < p.cols; x++ {
			t := p.grid[y][x]
			switch {
			case t == nil:
				sb.WriteByte('.')
			case t.Garbage:
				sb.WriteByte('G')
			default:
				sb.WriteByte(shapeToLetter[t.Shape])
			}
		}
		out = append(out, sb.String())
	}
	return out
}
