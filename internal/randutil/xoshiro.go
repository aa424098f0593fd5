// Package randutil holds the seeded generators every derivation is built on.
//
// Output must be bit-for-bit identical on every platform, so nothing here
// depends on math/rand's unspecified seeding or on the size of int.
package randutil

import (
	"encoding/binary"
	"math/bits"
)

// SeedSize is the number of bytes consumed by FromSeed.
const SeedSize = 32

// Xoshiro256PlusPlus is the xoshiro256++ generator (Blackman and Vigna).
// It is not safe for concurrent use.
type Xoshiro256PlusPlus struct {
	s [4]uint64
}

// FromSeed builds a generator whose state is the seed read as four
// little-endian words. An all-zero seed would lock the generator at zero,
// so it is replaced by SeedFromUint64(0).
func FromSeed(seed [SeedSize]byte) *Xoshiro256PlusPlus {
	if seed == [SeedSize]byte{} {
		return SeedFromUint64(0)
	}
	x := &Xoshiro256PlusPlus{}
	for i := range x.s {
		x.s[i] = binary.LittleEndian.Uint64(seed[i*8:])
	}
	return x
}

// SeedFromUint64 fills the state from SplitMix64 seeded with v.
func SeedFromUint64(v uint64) *Xoshiro256PlusPlus {
	sm := NewSplitMix64(v)
	x := &Xoshiro256PlusPlus{}
	for i := range x.s {
		x.s[i] = sm.Uint64()
	}
	return x
}

// Uint64 returns the next 64 bits of the stream.
func (x *Xoshiro256PlusPlus) Uint64() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[0]+s[3], 23) + s[0]

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}

// Uint32 returns the upper half of the next 64-bit output. The low bits of
// xoshiro have weak linear dependencies.
func (x *Xoshiro256PlusPlus) Uint32() uint32 {
	return uint32(x.Uint64() >> 32)
}

// Uint128 returns two consecutive outputs, the first one as the low word.
func (x *Xoshiro256PlusPlus) Uint128() (lo, hi uint64) {
	lo = x.Uint64()
	hi = x.Uint64()
	return lo, hi
}

// FillBytes writes successive outputs into b in little-endian order. A
// trailing partial word consumes a full output.
func (x *Xoshiro256PlusPlus) FillBytes(b []byte) {
	for len(b) >= 8 {
		binary.LittleEndian.PutUint64(b, x.Uint64())
		b = b[8:]
	}
	if len(b) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], x.Uint64())
		copy(b, tail[:])
	}
}
