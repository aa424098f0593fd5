package draw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	seedA = Randomness{88, 85, 86, 91, 61, 64, 60, 71, 234, 24, 246, 200, 35, 73, 38, 187, 54, 59, 96, 9, 237, 27, 215, 103, 148, 230, 28, 48, 51, 114, 203, 219}
	seedB = Randomness{207, 251, 10, 105, 100, 223, 244, 6, 207, 231, 253, 206, 157, 68, 143, 184, 209, 222, 70, 249, 114, 160, 213, 73, 147, 94, 136, 191, 94, 98, 99, 170}
	seedC = Randomness{43, 140, 160, 0, 187, 41, 212, 6, 218, 53, 58, 198, 80, 209, 171, 239, 222, 247, 30, 23, 184, 79, 79, 221, 192, 225, 217, 142, 135, 164, 169, 255}
	seedD = Randomness{74, 71, 86, 169, 247, 21, 60, 71, 234, 24, 246, 215, 35, 73, 38, 187, 54, 59, 96, 9, 237, 27, 215, 103, 14, 230, 28, 48, 51, 114, 203, 219}
	seedR = Randomness{52, 187, 72, 255, 102, 110, 115, 233, 50, 165, 124, 255, 217, 131, 112, 209, 253, 176, 108, 99, 102, 225, 12, 36, 82, 107, 106, 207, 99, 107, 197, 84}

	// A published beacon value.
	seedH = MustFromHex("9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62")
)

func repeated(b byte) Randomness {
	var r Randomness
	for i := range r {
		r[i] = b
	}
	return r
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// subSeeds returns n independent randomness values for distribution tests.
func subSeeds(t *testing.T, n int) []Randomness {
	t.Helper()
	return SubRandomnessWithKey(seedH, t.Name()).Take(n)
}

// eachSubSeed calls fn with n independent randomness values without
// holding them all in memory.
func eachSubSeed(t *testing.T, n int, fn func(Randomness)) {
	t.Helper()
	i := 0
	for r := range SubRandomnessWithKey(seedH, t.Name()).All() {
		if i == n {
			return
		}
		fn(r)
		i++
	}
}

// trialCount returns full, or full/20 under -short.
func trialCount(full int) int {
	if testing.Short() {
		return full / 20
	}
	return full
}

// assertNear checks got against expected within 1%, or five standard
// deviations of a binomial count when that is wider.
func assertNear(t *testing.T, expected float64, got int, msgAndArgs ...any) {
	t.Helper()
	tolerance := math.Max(0.01*expected, 5*math.Sqrt(expected))
	assert.InDelta(t, expected, float64(got), tolerance, msgAndArgs...)
}
