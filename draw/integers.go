package draw

import (
	"fmt"
	"math"
	"math/bits"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Int is the set of native integer types the range sampler accepts. The
// 128-bit types have their own functions in int128.go.
type Int interface {
	constraints.Integer
}

// IntInRange returns a uniformly distributed integer in [begin, end],
// including both bounds. It avoids modulo bias.
//
//	dice, err := draw.IntInRange(r, 1, 6)
func IntInRange[T Int](r Randomness, begin, end T) (T, error) {
	return SampleOne(NewSource(r), begin, end)
}

// IntsInRange returns exactly count integers from [begin, end], all drawn
// from one generator stream. It is cheaper than count calls to IntInRange
// because the rejection zone is computed once.
func IntsInRange[T Int](r Randomness, count int, begin, end T) ([]T, error) {
	return SampleMany(NewSource(r), count, begin, end)
}

// SampleOne draws one integer in [begin, end] from src.
func SampleOne[T Int](src *Source, begin, end T) (T, error) {
	if begin > end {
		var zero T
		return zero, fmt.Errorf("%w: [%v, %v]", ErrEmptyRange, begin, end)
	}
	return sampleSingle(src, begin, end), nil
}

// SampleMany draws count integers in [begin, end] from src. The result is
// equivalent to count sequential draws sharing src. A zero count returns an
// empty slice and leaves src untouched.
func SampleMany[T Int](src *Source, count int, begin, end T) ([]T, error) {
	if begin > end {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrEmptyRange, begin, end)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}

	w := widthOf[T]()
	out := make([]T, count)
	span := w.span(uint64(begin), uint64(end))
	if span == 0 {
		for i := range out {
			out[i] = T(src.word(w))
		}
		return out, nil
	}

	zone := w.exactZone(span)
	for i := range out {
		out[i] = begin + T(src.lemire(w, span, zone))
	}
	return out, nil
}

// sampleSingle assumes begin <= end.
func sampleSingle[T Int](src *Source, begin, end T) T {
	w := widthOf[T]()
	span := w.span(uint64(begin), uint64(end))
	if span == 0 {
		// The whole type was requested; any value will do.
		return T(src.word(w))
	}
	return begin + T(src.lemire(w, span, w.singleZone(span)))
}

// width describes how a type is sampled: bits is the width of the type and
// word is the generator word used for it (32 or 64).
type width struct {
	bits uint
	word uint
}

// widthOf uses the kind, not unsafe.Sizeof, so int and uint are sampled as
// 64-bit values on every platform.
func widthOf[T Int]() width {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8, reflect.Uint8:
		return width{bits: 8, word: 32}
	case reflect.Int16, reflect.Uint16:
		return width{bits: 16, word: 32}
	case reflect.Int32, reflect.Uint32:
		return width{bits: 32, word: 32}
	default:
		return width{bits: 64, word: 64}
	}
}

// span returns end-begin+1 reduced to the type width. Zero means the range
// covers every value of the type.
func (w width) span(begin, end uint64) uint64 {
	s := end - begin + 1
	if w.bits < 64 {
		s &= 1<<w.bits - 1
	}
	return s
}

func (w width) wordMax() uint64 {
	if w.word == 32 {
		return math.MaxUint32
	}
	return math.MaxUint64
}

// exactZone is the largest accepted low half: it rejects exactly
// 2^word mod span values.
func (w width) exactZone(span uint64) uint64 {
	m := w.wordMax()
	return m - (m-span+1)%span
}

// singleZone trades a few extra rejections for skipping the division on
// wide types. Narrow types keep the exact zone.
func (w width) singleZone(span uint64) uint64 {
	if w.bits <= 16 {
		return w.exactZone(span)
	}
	if w.word == 32 {
		s := uint32(span)
		return uint64(s<<bits.LeadingZeros32(s) - 1)
	}
	return span<<bits.LeadingZeros64(span) - 1
}

// word returns one raw generator word of the given width.
func (s *Source) word(w width) uint64 {
	if w.word == 32 {
		return uint64(s.rng.Uint32())
	}
	return s.rng.Uint64()
}

// lemire maps raw words onto [0, span) with a widening multiply, retrying
// while the low half falls outside zone.
func (s *Source) lemire(w width, span, zone uint64) uint64 {
	for {
		var hi, lo uint64
		if w.word == 32 {
			p := uint64(s.rng.Uint32()) * span
			hi, lo = p>>32, p&math.MaxUint32
		} else {
			hi, lo = bits.Mul64(s.rng.Uint64(), span)
		}
		if lo <= zone {
			return hi
		}
	}
}
