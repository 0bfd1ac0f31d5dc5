package shapes

import "fmt"

// kickStep identifies an ordered (from, to) rotation transition.
type kickStep struct {
	from, to int
}

// jlstzKicks is the SRS wall-kick table shared by J, L, S, T and Z (and,
// trivially, O: its identical-cell rotations make the first candidate
// always succeed). Five candidate translations per transition, tried in
// order; the first that yields a valid placement wins.
var jlstzKicks = map[kickStep][5]Point{
	{0, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{1, 0}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{1, 2}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{2, 1}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{2, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{3, 2}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{3, 0}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{0, 3}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
}

// iKicks is the SRS wall-kick table for the I piece.
var iKicks = map[kickStep][5]Point{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// KickOffsets returns the five candidate translations to try, in order,
// when rotating shape from one quarter-turn state to an adjacent one. It
// panics on from == to or |from-to| == 2: those are programmer errors,
// never user-triggerable (180 degree rotation is handled separately by
// the Tetrion, without a dedicated kick table; see spec.md §4.4.1).
func KickOffsets(name Name, from, to int) [5]Point {
	from, to = ((from%4)+4)%4, ((to%4)+4)%4
	diff := (to - from + 4) % 4
	if diff != 1 && diff != 3 {
		panic(fmt.Sprintf("shapes: KickOffsets called with non-adjacent rotations %d -> %d", from, to))
	}
	if name == I {
		return iKicks[kickStep{from, to}]
	}
	return jlstzKicks[kickStep{from, to}]
}
