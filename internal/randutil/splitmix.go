package randutil

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// SplitMix64 is the small generator used to stretch a single 64-bit value
// into a full xoshiro state.
type SplitMix64 struct {
	x uint64
}

// NewSplitMix64 returns a SplitMix64 positioned at seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{x: seed}
}

// Uint64 advances the state by the golden ratio and returns the mixed value.
func (s *SplitMix64) Uint64() uint64 {
	s.x += goldenRatio64
	return mix(s.x)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
