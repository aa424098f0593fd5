package draw

import "fmt"

// Pick returns n distinct elements of data in random order. Picking every
// element gives the same order as Shuffle with the same randomness.
//
//	numbers, err := draw.Pick(r, 6, lottery)
func Pick[T any](r Randomness, n int, data []T) ([]T, error) {
	return PickWith(NewSource(r), n, data)
}

// PickWith is Pick drawing from src.
func PickWith[T any](src *Source, n int, data []T) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	if n > len(data) {
		return nil, fmt.Errorf("%w: %d > %d", ErrPickTooMany, n, len(data))
	}

	out := append([]T(nil), data...)
	// A partial Fisher-Yates from the back. The loop runs down to index 0
	// when n == len(data); that last step always swaps in place but still
	// consumes a draw.
	stop := len(out) - n
	for i := len(out) - 1; i >= stop; i-- {
		j := sampleSingle(src, 0, uint64(i))
		out[i], out[j] = out[j], out[i]
	}
	return out[stop:], nil
}
