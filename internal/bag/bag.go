// Package bag implements the 7-bag tetromino randomizer: a lazy, seeded,
// restartable sequence of shapes.Name where every consecutive run of seven
// draws is a permutation of the seven tetrominoes.
package bag

import (
	"math/rand/v2"

	"github.com/herbhall/cli-tetris/internal/shapes"
)

// Bag is a stateful 7-bag shape generator. Two bags constructed with the
// same seed produce identical infinite sequences.
type Bag struct {
	rng     *rand.Rand
	pending []shapes.Name
}

// New creates a bag seeded deterministically from seed.
func New(seed uint64) *Bag {
	return &Bag{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Next returns the next shape in the sequence, refilling and reshuffling
// the bag whenever it runs empty.
func (b *Bag) Next() shapes.Name {
	if len(b.pending) == 0 {
		b.refill()
	}
	n := b.pending[0]
	b.pending = b.pending[1:]
	return n
}

// refill loads a freshly shuffled set of all seven shapes.
func (b *Bag) refill() {
	fresh := shapes.Names
	b.rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	b.pending = fresh[:]
}
