package draw

// Shuffle returns a uniformly random permutation of data. data is left
// untouched; the result is a new slice.
func Shuffle[T any](r Randomness, data []T) []T {
	return ShuffleWith(NewSource(r), data)
}

// ShuffleWith permutes a copy of data using src.
func ShuffleWith[T any](src *Source, data []T) []T {
	out := append([]T(nil), data...)
	for i := len(out) - 1; i > 0; i-- {
		j := sampleSingle(src, 0, uint64(i))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
