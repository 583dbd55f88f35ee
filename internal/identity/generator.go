package identity

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
)

// Generator hands out fresh identifiers. Implementations must be safe for
// concurrent use.
type Generator interface {
	Next() Identifier
}

// RandomGenerator draws every identifier from crypto/rand. Uniqueness is
// probabilistic: 232 random bits, no coordination between callers.
type RandomGenerator struct{}

// NewRandomGenerator returns the production generator.
func NewRandomGenerator() RandomGenerator {
	return RandomGenerator{}
}

// Next returns a new random identifier. crypto/rand.Read never fails on
// supported platforms; the runtime aborts instead of returning short reads.
func (RandomGenerator) Next() Identifier {
	var id Identifier
	_, _ = rand.Read(id[:])
	return id
}

// SequenceGenerator yields predictable identifiers (1, 2, 3, ... in the
// trailing eight bytes). It is meant for tests and fixtures only.
type SequenceGenerator struct {
	counter atomic.Uint64
}

// NewSequenceGenerator starts a sequence after the provided value.
func NewSequenceGenerator(start uint64) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.counter.Store(start)
	return g
}

// Next returns the next identifier in the sequence.
func (g *SequenceGenerator) Next() Identifier {
	var id Identifier
	binary.BigEndian.PutUint64(id[Size-8:], g.counter.Add(1))
	return id
}
