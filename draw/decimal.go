package draw

import (
	"fmt"
	"strings"
)

// DecimalPlaces is the number of fractional digits of a Decimal.
const DecimalPlaces = 18

const decimalOne uint64 = 1_000_000_000_000_000_000

// Decimal is a fixed point number in [0, 1) with DecimalPlaces digits.
type Decimal struct {
	atomics uint64
}

// RandomDecimal returns a uniformly distributed Decimal in [0, 1).
func RandomDecimal(r Randomness) Decimal {
	v, err := IntInRange[uint64](r, 0, decimalOne-1)
	if err != nil {
		panic(err)
	}
	return Decimal{atomics: v}
}

// DecimalFromAtomics builds a Decimal from its value times 10^18.
func DecimalFromAtomics(atomics uint64) (Decimal, error) {
	if atomics >= decimalOne {
		return Decimal{}, fmt.Errorf("decimal atomics %d out of range", atomics)
	}
	return Decimal{atomics: atomics}, nil
}

// Atomics returns the value times 10^18.
func (d Decimal) Atomics() uint64 { return d.atomics }

// Float64 returns the nearest float64.
func (d Decimal) Float64() float64 {
	return float64(d.atomics) / float64(decimalOne)
}

// String renders the shortest exact decimal, e.g. "0.25".
func (d Decimal) String() string {
	if d.atomics == 0 {
		return "0"
	}
	frac := strings.TrimRight(fmt.Sprintf("%018d", d.atomics), "0")
	return "0." + frac
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
