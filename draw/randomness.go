package draw

import (
	"encoding/hex"
	"fmt"
)

// RandomnessSize is the length of a Randomness in bytes.
const RandomnessSize = 32

// Randomness is the 256-bit value every derivation starts from.
type Randomness [RandomnessSize]byte

// InvalidInputLengthError reports a hex input that is not 64 characters long.
type InvalidInputLengthError struct {
	N int // input length in bytes
}

func (e *InvalidInputLengthError) Error() string {
	return fmt.Sprintf("expected 64 hex characters but got an input of %d bytes", e.N)
}

// InvalidHexCharacterError reports a byte that is not a hex digit.
type InvalidHexCharacterError struct {
	C     rune
	Index int
}

func (e *InvalidHexCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.C, e.Index)
}

// FromHex decodes a randomness from exactly 64 hex characters.
func FromHex(s string) (Randomness, error) {
	var r Randomness
	if len(s) != 2*RandomnessSize {
		return r, &InvalidInputLengthError{N: len(s)}
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return r, &InvalidHexCharacterError{C: rune(s[i]), Index: i}
		}
	}
	if _, err := hex.Decode(r[:], []byte(s)); err != nil {
		return r, fmt.Errorf("decode randomness: %w", err)
	}
	return r, nil
}

// MustFromHex is like FromHex but panics on malformed input. It is meant
// for constants and tests.
func MustFromHex(s string) Randomness {
	r, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return r
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// String returns the lowercase hex encoding.
func (r Randomness) String() string {
	return hex.EncodeToString(r[:])
}

// MarshalText implements encoding.TextMarshaler.
func (r Randomness) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Randomness) UnmarshalText(text []byte) error {
	v, err := FromHex(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
