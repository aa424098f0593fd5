package draw

import (
	"fmt"
	"math"
)

// Weighted pairs an element with its selection weight.
type Weighted[T any] struct {
	Element T
	Weight  uint32
}

// W is shorthand for building a Weighted.
func W[T any](element T, weight uint32) Weighted[T] {
	return Weighted[T]{Element: element, Weight: weight}
}

// SelectFromWeighted picks one element with probability proportional to its
// weight. Weights must be at least 1 and sum to at most MaxUint32.
func SelectFromWeighted[T any](r Randomness, list []Weighted[T]) (T, error) {
	return SelectFromWeightedWith(NewSource(r), list)
}

// SelectFromWeightedWith is SelectFromWeighted drawing from src.
func SelectFromWeightedWith[T any](src *Source, list []Weighted[T]) (T, error) {
	var zero T
	if len(list) == 0 {
		return zero, ErrEmptyList
	}

	var total uint64
	for i, w := range list {
		if w.Weight == 0 {
			return zero, fmt.Errorf("%w: element %d", ErrZeroWeight, i)
		}
		total += uint64(w.Weight)
		if total > math.MaxUint32 {
			return zero, ErrTotalWeightOverflow
		}
	}

	target := sampleSingle(src, 1, uint32(total))
	var sum uint32
	for _, w := range list {
		sum += w.Weight
		if target <= sum {
			return w.Element, nil
		}
	}
	panic("no element selected")
}
