package draw

import (
	"crypto/sha256"
	"encoding/binary"
)

// SimulateRandomness derives a stand-in randomness from a block height.
// The output is fully predictable; use it for tests and local networks,
// never where the outcome matters.
func SimulateRandomness(height uint64) Randomness {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], height)
	return sha256.Sum256(b[:])
}
