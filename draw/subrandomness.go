package draw

import (
	"iter"

	"github.com/zeebo/xxh3"
)

// DefaultSubRandomnessKey is the key used by SubRandomness.
const DefaultSubRandomnessKey = "_^default^_"

// SubRandomnessProvider yields an unbounded sequence of independent
// randomness values derived from one parent randomness and a key. Different
// keys give unrelated sequences, so the key works as a namespace.
//
// A provider is a stream: each call to Provide advances it. It is not safe
// for concurrent use.
type SubRandomnessProvider struct {
	src *Source
}

// SubRandomness returns a provider for r under DefaultSubRandomnessKey.
func SubRandomness(r Randomness) *SubRandomnessProvider {
	return SubRandomnessWithKey(r, DefaultSubRandomnessKey)
}

// SubRandomnessWithKey returns a provider for r namespaced by key. The key
// is hashed with XXH3-128 and mixed into the first 16 bytes of r.
func SubRandomnessWithKey[K ~string | ~[]byte](r Randomness, key K) *SubRandomnessProvider {
	h := xxh3.Hash128([]byte(key)).Bytes()
	seed := r
	for i, b := range h {
		seed[i] ^= b
	}
	return &SubRandomnessProvider{src: NewSource(seed)}
}

// Provide returns the next sub-randomness.
func (p *SubRandomnessProvider) Provide() Randomness {
	return p.src.Randomness()
}

// Take returns the next n sub-randomness values.
func (p *SubRandomnessProvider) Take(n int) []Randomness {
	if n <= 0 {
		return nil
	}
	out := make([]Randomness, n)
	for i := range out {
		out[i] = p.Provide()
	}
	return out
}

// All iterates the remaining sequence. The sequence never ends on its own;
// the caller stops ranging when it has enough.
//
//	for sub := range p.All() {
//		if done { break }
//	}
func (p *SubRandomnessProvider) All() iter.Seq[Randomness] {
	return func(yield func(Randomness) bool) {
		for {
			if !yield(p.Provide()) {
				return
			}
		}
	}
}
