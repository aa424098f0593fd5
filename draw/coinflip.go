package draw

// Side is the outcome of a coin flip.
type Side uint8

const (
	Heads Side = iota
	Tails
)

func (s Side) String() string {
	if s == Heads {
		return "heads"
	}
	return "tails"
}

func (s Side) IsHeads() bool { return s == Heads }
func (s Side) IsTails() bool { return s == Tails }

// CoinFlip returns Heads when the first byte of r is even.
func CoinFlip(r Randomness) Side {
	if r[0]%2 == 0 {
		return Heads
	}
	return Tails
}
