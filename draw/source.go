package draw

import "github.com/lox/fairdraw/internal/randutil"

// Source is the expanded generator state of one derivation. A Source is
// owned by a single caller; it is not safe for concurrent use.
//
// Functions taking a Randomness build a fresh Source per call. The *With and
// Sample* variants take a Source so several values can be drawn from one
// stream.
type Source struct {
	rng *randutil.Xoshiro256PlusPlus
}

// NewSource expands r into a generator state.
func NewSource(r Randomness) *Source {
	return &Source{rng: randutil.FromSeed(r)}
}

// Uint32 returns the next 32 raw bits.
func (s *Source) Uint32() uint32 { return s.rng.Uint32() }

// Uint64 returns the next 64 raw bits.
func (s *Source) Uint64() uint64 { return s.rng.Uint64() }

// Randomness fills a new Randomness from the raw stream.
func (s *Source) Randomness() Randomness {
	var out Randomness
	s.rng.FillBytes(out[:])
	return out
}
