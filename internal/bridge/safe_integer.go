package bridge

import "math"

const (
	// MinSafeInteger is Number.MIN_SAFE_INTEGER.
	MinSafeInteger = -(1<<53 - 1)
	// MaxSafeInteger is Number.MAX_SAFE_INTEGER.
	MaxSafeInteger = 1<<53 - 1
)

// ToSafeInteger converts a JavaScript number to an int64. It reports false
// for NaN, infinities, values with a fractional part and anything outside
// [MinSafeInteger, MaxSafeInteger].
func ToSafeInteger(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, false
	}
	if v < MinSafeInteger || v > MaxSafeInteger {
		return 0, false
	}
	return int64(v), true
}
