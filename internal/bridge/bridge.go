// Package bridge exposes the draw functions to callers that speak in
// strings and JavaScript numbers: hex randomness in, strings and safe
// integers out. All input validation happens here so draw only ever sees
// well formed values.
package bridge

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/fairdraw/draw"
)

// MaxSubRandomnessCount bounds the number of values one SubRandomness
// call returns.
const MaxSubRandomnessCount = 1 << 16

var (
	ErrEndNotLarger   = errors.New("end must be larger than begin")
	ErrLengthMismatch = errors.New("items and weights must have the same length")
	ErrCountTooLarge  = fmt.Errorf("count must not exceed %d", MaxSubRandomnessCount)
)

// number converts a decoded JSON or msgpack value into a safe integer.
func number(name string, v any) (int64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case int:
		f = float64(n)
	default:
		return 0, fmt.Errorf("%s is not of type number", name)
	}
	i, ok := ToSafeInteger(f)
	if !ok {
		return 0, fmt.Errorf("%s is not a safe integer", name)
	}
	return i, nil
}

func count(name string, v any) (int, error) {
	i, err := number(name, v)
	if err != nil {
		return 0, err
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, fmt.Errorf("%s must be in [0, %d]", name, uint32(math.MaxUint32))
	}
	return int(i), nil
}

// CoinFlip returns "heads" or "tails".
func CoinFlip(randomness string) (string, error) {
	r, err := draw.FromHex(randomness)
	if err != nil {
		return "", err
	}
	return draw.CoinFlip(r).String(), nil
}

// RollDice returns a value from 1 to 6.
func RollDice(randomness string) (uint8, error) {
	r, err := draw.FromHex(randomness)
	if err != nil {
		return 0, err
	}
	return draw.RollDice(r), nil
}

// IntInRange returns an integer in [begin, end). Unlike draw.IntInRange the
// end is exclusive, matching the usual JavaScript convention.
func IntInRange(randomness string, begin, end any) (int64, error) {
	b, err := number("begin", begin)
	if err != nil {
		return 0, err
	}
	e, err := number("end", end)
	if err != nil {
		return 0, err
	}
	if e <= b {
		return 0, ErrEndNotLarger
	}
	r, err := draw.FromHex(randomness)
	if err != nil {
		return 0, err
	}
	return draw.IntInRange(r, b, e-1)
}

// RandomDecimal returns a decimal string d with 0 <= d < 1.
func RandomDecimal(randomness string) (string, error) {
	r, err := draw.FromHex(randomness)
	if err != nil {
		return "", err
	}
	return draw.RandomDecimal(r).String(), nil
}

// SubRandomness returns the first n sub-randomness values as hex.
func SubRandomness(randomness string, n any) ([]string, error) {
	c, err := count("count", n)
	if err != nil {
		return nil, err
	}
	if c > MaxSubRandomnessCount {
		return nil, ErrCountTooLarge
	}
	r, err := draw.FromHex(randomness)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, c)
	for _, sub := range draw.SubRandomness(r).Take(c) {
		out = append(out, sub.String())
	}
	return out, nil
}

// Shuffle returns items in random order.
func Shuffle(randomness string, items []string) ([]string, error) {
	r, err := draw.FromHex(randomness)
	if err != nil {
		return nil, err
	}
	return draw.Shuffle(r, items), nil
}

// Pick returns n distinct items.
func Pick(randomness string, n any, items []string) ([]string, error) {
	c, err := count("n", n)
	if err != nil {
		return nil, err
	}
	r, err := draw.FromHex(randomness)
	if err != nil {
		return nil, err
	}
	return draw.Pick(r, c, items)
}

// SelectFromWeighted picks one of items; weights[i] is the weight of items[i].
func SelectFromWeighted(randomness string, items []string, weights []any) (string, error) {
	if len(items) != len(weights) {
		return "", ErrLengthMismatch
	}
	list := make([]draw.Weighted[string], len(items))
	for i, item := range items {
		w, err := number(fmt.Sprintf("weights[%d]", i), weights[i])
		if err != nil {
			return "", err
		}
		if w < 0 || w > math.MaxUint32 {
			return "", fmt.Errorf("weights[%d] does not fit in u32", i)
		}
		list[i] = draw.W(item, uint32(w))
	}
	r, err := draw.FromHex(randomness)
	if err != nil {
		return "", err
	}
	return draw.SelectFromWeighted(r, list)
}
