package draw

// RollDice returns a value from 1 to 6.
func RollDice(r Randomness) uint8 {
	v, err := IntInRange[uint8](r, 1, 6)
	if err != nil {
		panic(err)
	}
	return v
}
