// Package random provides the random number sources a battle draws from.
//
// Remote fetches a decimal fraction from a random.org-compatible HTTP
// endpoint. Seeded produces a reproducible stream from an int64 seed, for
// offline runs and replays.
package random

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seeded yields a deterministic sequence of values in [0,1).
//
// Given the same seed, successive NextRandom calls always return the same
// values in the same order. A Seeded is not safe for concurrent use.
type Seeded struct {
	seed int64
	rng  *rand.Rand
}

// NewSeeded returns a source seeded with seed. A zero seed is replaced with
// one drawn from crypto/rand; Seed reports the value actually used.
func NewSeeded(seed int64) (*Seeded, error) {
	if seed == 0 {
		generated, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = generated
	}
	return &Seeded{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the seed the stream was built from.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// NextRandom returns the next value of the stream.
func (s *Seeded) NextRandom(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.rng.Float64(), nil
}
