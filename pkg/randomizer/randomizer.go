package randomizer

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// Source derives independent, deterministic random streams from a single
// master seed. Each (dataset, replicate) pair maps to its own generator, so
// replicates can run on any worker in any order and still reproduce the same
// draws for a fixed master seed.
type Source struct {
	masterSeed int64
}

// NewSource creates a randomness source from a master seed
func NewSource(masterSeed int64) *Source {
	return &Source{masterSeed: masterSeed}
}

// Seed returns the master seed the source was built from
func (s *Source) Seed() int64 {
	return s.masterSeed
}

// Stream returns the generator for one replicate of one dataset. Streams for
// distinct (dataset, replicate) pairs are seeded independently; calling
// Stream twice with the same arguments returns generators that produce
// identical sequences.
func (s *Source) Stream(dataset string, replicate int) *rand.Rand {
	h := fnv.New64a()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.masterSeed))
	h.Write(buf[:])

	h.Write([]byte(dataset))

	binary.LittleEndian.PutUint64(buf[:], uint64(replicate))
	h.Write(buf[:])

	return rand.New(rand.NewSource(int64(h.Sum64())))
}
