package bridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const beacon = "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62"

func TestCoinFlip(t *testing.T) {
	side, err := CoinFlip(beacon)
	require.NoError(t, err)
	assert.Equal(t, "heads", side)

	_, err = CoinFlip("abc")
	assert.EqualError(t, err, "expected 64 hex characters but got an input of 3 bytes")
}

func TestRollDice(t *testing.T) {
	v, err := RollDice(beacon)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), v)
}

func TestIntInRange(t *testing.T) {
	t.Run("end is exclusive", func(t *testing.T) {
		v, err := IntInRange(beacon, 1.0, 7.0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)

		v, err = IntInRange(beacon, -10.0, 10.0)
		require.NoError(t, err)
		assert.Equal(t, int64(-7), v)
	})

	t.Run("integer inputs", func(t *testing.T) {
		v, err := IntInRange(beacon, int64(0), uint64(100))
		require.NoError(t, err)
		assert.Equal(t, int64(45), v)
	})

	t.Run("single value", func(t *testing.T) {
		v, err := IntInRange(beacon, 5.0, 6.0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	})

	tests := []struct {
		name       string
		begin, end any
		want       string
	}{
		{"equal bounds", 5.0, 5.0, "end must be larger than begin"},
		{"reversed", 6.0, 5.0, "end must be larger than begin"},
		{"begin string", "1", 5.0, "begin is not of type number"},
		{"end missing", 1.0, nil, "end is not of type number"},
		{"begin fraction", 1.5, 5.0, "begin is not a safe integer"},
		{"end too large", 1.0, 9007199254740992.0, "end is not a safe integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IntInRange(beacon, tt.begin, tt.end)
			assert.EqualError(t, err, tt.want)
		})
	}

	t.Run("bad randomness after valid bounds", func(t *testing.T) {
		_, err := IntInRange("zz", 1.0, 5.0)
		assert.Error(t, err)
	})
}

func TestRandomDecimal(t *testing.T) {
	d, err := RandomDecimal(beacon)
	require.NoError(t, err)
	assert.Equal(t, "0.198806045911557381", d)
}

func TestSubRandomness(t *testing.T) {
	got, err := SubRandomness(beacon, 2.0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"8b7154ebd3c91693fea758b3962cc8b763e1bf409a0311c6fb31914cf65e5b26",
		"fe0224fe9664337df61d619c0d2a24dbd2f00ce3deb9f7bf77bdad80608bc8a7",
	}, got)

	got, err = SubRandomness(beacon, 0.0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = SubRandomness(beacon, -1.0)
	assert.Error(t, err)
}

func TestSubRandomnessCountLimit(t *testing.T) {
	got, err := SubRandomness(beacon, float64(MaxSubRandomnessCount))
	require.NoError(t, err)
	assert.Len(t, got, MaxSubRandomnessCount)

	for _, n := range []any{float64(MaxSubRandomnessCount + 1), float64(math.MaxUint32), uint64(math.MaxUint32)} {
		_, err := SubRandomness(beacon, n)
		require.ErrorIs(t, err, ErrCountTooLarge, "count %v", n)
	}
}

func TestShufflePickWeighted(t *testing.T) {
	shuffled, err := Shuffle(beacon, []string{"1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "3", "1"}, shuffled)

	picked, err := Pick(beacon, 2.0, []string{"bob", "mary", "su", "marc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"su", "bob"}, picked)

	_, err = Pick(beacon, 5.0, []string{"bob"})
	assert.EqualError(t, err, "attempt to pick more elements than the input length: 5 > 1")

	hat, err := SelectFromWeighted(beacon,
		[]string{"green hat", "viking helmet", "rare golden crown"},
		[]any{40.0, 55.0, 5.0})
	require.NoError(t, err)
	assert.Equal(t, "viking helmet", hat)

	_, err = SelectFromWeighted(beacon, []string{"a"}, []any{1.0, 2.0})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = SelectFromWeighted(beacon, []string{"a"}, []any{-1.0})
	assert.Error(t, err)
}
