package draw

import (
	"fmt"
	"math/big"
	"math/bits"

	"lukechampine.com/uint128"
)

// Uint128 is an unsigned 128-bit integer.
type Uint128 = uint128.Uint128

// Int128 is a signed 128-bit integer in two's complement.
type Int128 struct {
	u Uint128
}

var (
	// MinInt128 is the smallest Int128.
	MinInt128 = Int128{u: uint128.New(0, 1<<63)}
	// MaxInt128 is the largest Int128.
	MaxInt128 = Int128{u: uint128.New(^uint64(0), 1<<63-1)}

	int128SignBit = uint128.New(0, 1<<63)
)

// Int128From64 sign-extends v.
func Int128From64(v int64) Int128 {
	hi := uint64(0)
	if v < 0 {
		hi = ^uint64(0)
	}
	return Int128{u: uint128.New(uint64(v), hi)}
}

// Int128FromBig converts b, failing if it does not fit.
func Int128FromBig(b *big.Int) (Int128, error) {
	if b.BitLen() > 128 || b.Cmp(MinInt128.Big()) < 0 || b.Cmp(MaxInt128.Big()) > 0 {
		return Int128{}, fmt.Errorf("value %s overflows Int128", b)
	}
	v := new(big.Int).Set(b)
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return Int128{u: uint128.FromBig(v)}, nil
}

// ParseInt128 parses a base 10 integer.
func ParseInt128(s string) (Int128, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int128{}, fmt.Errorf("invalid Int128 %q", s)
	}
	return Int128FromBig(b)
}

// Cmp compares a and b and returns -1, 0 or +1.
func (a Int128) Cmp(b Int128) int {
	return a.u.Xor(int128SignBit).Cmp(b.u.Xor(int128SignBit))
}

// Sign returns -1, 0 or +1.
func (a Int128) Sign() int {
	switch {
	case a.u.IsZero():
		return 0
	case a.u.Hi&(1<<63) != 0:
		return -1
	default:
		return 1
	}
}

// Big returns a as a *big.Int.
func (a Int128) Big() *big.Int {
	b := a.u.Big()
	if a.Sign() < 0 {
		b.Sub(b, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return b
}

func (a Int128) String() string {
	return a.Big().String()
}

// Uint128InRange returns a uniformly distributed value in [begin, end].
func Uint128InRange(r Randomness, begin, end Uint128) (Uint128, error) {
	return SampleUint128(NewSource(r), begin, end)
}

// Uint128sInRange returns count values in [begin, end] from one stream.
func Uint128sInRange(r Randomness, count int, begin, end Uint128) ([]Uint128, error) {
	return SampleManyUint128(NewSource(r), count, begin, end)
}

// Int128InRange returns a uniformly distributed value in [begin, end].
func Int128InRange(r Randomness, begin, end Int128) (Int128, error) {
	return SampleInt128(NewSource(r), begin, end)
}

// Int128sInRange returns count values in [begin, end] from one stream.
func Int128sInRange(r Randomness, count int, begin, end Int128) ([]Int128, error) {
	return SampleManyInt128(NewSource(r), count, begin, end)
}

// SampleUint128 draws one value in [begin, end] from src.
func SampleUint128(src *Source, begin, end Uint128) (Uint128, error) {
	if begin.Cmp(end) > 0 {
		return Uint128{}, fmt.Errorf("%w: [%s, %s]", ErrEmptyRange, begin, end)
	}
	return src.sample128(begin, end, false), nil
}

// SampleManyUint128 draws count values in [begin, end] from src.
func SampleManyUint128(src *Source, count int, begin, end Uint128) ([]Uint128, error) {
	if begin.Cmp(end) > 0 {
		return nil, fmt.Errorf("%w: [%s, %s]", ErrEmptyRange, begin, end)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	out := make([]Uint128, count)
	for i := range out {
		out[i] = src.sample128(begin, end, true)
	}
	return out, nil
}

// SampleInt128 draws one value in [begin, end] from src.
func SampleInt128(src *Source, begin, end Int128) (Int128, error) {
	if begin.Cmp(end) > 0 {
		return Int128{}, fmt.Errorf("%w: [%s, %s]", ErrEmptyRange, begin, end)
	}
	return Int128{u: src.sample128(begin.u, end.u, false)}, nil
}

// SampleManyInt128 draws count values in [begin, end] from src.
func SampleManyInt128(src *Source, count int, begin, end Int128) ([]Int128, error) {
	if begin.Cmp(end) > 0 {
		return nil, fmt.Errorf("%w: [%s, %s]", ErrEmptyRange, begin, end)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	out := make([]Int128, count)
	for i := range out {
		out[i] = Int128{u: src.sample128(begin.u, end.u, true)}
	}
	return out, nil
}

// sample128 works on the two's complement bit patterns, so it serves both
// signed and unsigned bounds. exact selects the precomputed-zone variant
// used for batches.
func (s *Source) sample128(begin, end Uint128, exact bool) Uint128 {
	span := end.SubWrap(begin).AddWrap64(1)
	if span.IsZero() {
		return s.word128()
	}

	var zone Uint128
	if exact {
		zone = uint128.Max.Sub(uint128.Max.SubWrap(span).AddWrap64(1).Mod(span))
	} else {
		zone = span.Lsh(uint(span.LeadingZeros())).SubWrap64(1)
	}

	for {
		hi, lo := mul128(s.word128(), span)
		if lo.Cmp(zone) <= 0 {
			return begin.AddWrap(hi)
		}
	}
}

func (s *Source) word128() Uint128 {
	lo, hi := s.rng.Uint128()
	return uint128.New(lo, hi)
}

// mul128 returns the full 256-bit product of a and b as two halves.
func mul128(a, b Uint128) (hi, lo Uint128) {
	h00, l00 := bits.Mul64(a.Lo, b.Lo)
	h01, l01 := bits.Mul64(a.Lo, b.Hi)
	h10, l10 := bits.Mul64(a.Hi, b.Lo)
	h11, l11 := bits.Mul64(a.Hi, b.Hi)

	r1, c1 := bits.Add64(h00, l01, 0)
	r1, c2 := bits.Add64(r1, l10, 0)

	r2, c3 := bits.Add64(h01, h10, 0)
	r2, c4 := bits.Add64(r2, l11, 0)
	r2, c5 := bits.Add64(r2, c1+c2, 0)

	r3 := h11 + c3 + c4 + c5

	return uint128.New(r2, r3), uint128.New(l00, r1)
}
