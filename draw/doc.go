// Package draw turns a single 32-byte randomness value into reproducible
// derived values: coin flips, dice, integers in arbitrary ranges, shuffles,
// picks, weighted selections and independent sub-randomness.
//
// Every function is a pure function of its inputs. Given the same randomness
// and arguments, the result is identical on every platform and across
// releases, so a verifier holding the published randomness can recompute any
// outcome.
//
// Drawing several values from one randomness with different parameters can
// produce correlated results. IntInRange(r, 1, 33) and IntInRange(r, 1, 30)
// often differ by a near-constant offset because both reinterpret the same
// generator output. Use SubRandomness to get one independent randomness per
// draw instead.
//
// The randomness itself is assumed to be unpredictable and unbiased; this
// package only post-processes it.
package draw
