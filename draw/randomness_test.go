package draw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := FromHex("9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62")
		require.NoError(t, err)
		assert.Equal(t, Randomness{158, 142, 38, 97, 95, 81, 85, 42, 163, 177, 139, 111, 11, 207, 13, 174, 90, 251, 227, 3, 33, 232, 215, 234, 127, 165, 30, 190, 177, 216, 254, 98}, r)
	})

	t.Run("uppercase", func(t *testing.T) {
		r, err := FromHex("9E8E26615F51552AA3B18B6F0BCF0DAE5AFBE30321E8D7EA7FA51EBEB1D8FE62")
		require.NoError(t, err)
		assert.Equal(t, seedH, r)
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"too short", "26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62", "expected 64 hex characters but got an input of 60 bytes"},
		{"emoji", "whatever 🤷‍♂️", "expected 64 hex characters but got an input of 22 bytes"},
		{"empty", "", "expected 64 hex characters but got an input of 0 bytes"},
		{"bad char", "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe6x", "invalid character 'x' at position 63"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromHex(tt.input)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
		})
	}

	t.Run("typed errors", func(t *testing.T) {
		_, err := FromHex("abc")
		var lenErr *InvalidInputLengthError
		require.ErrorAs(t, err, &lenErr)
		assert.Equal(t, 3, lenErr.N)

		_, err = FromHex("g" + seedH.String()[1:])
		var charErr *InvalidHexCharacterError
		require.ErrorAs(t, err, &charErr)
		assert.Equal(t, 'g', charErr.C)
		assert.Equal(t, 0, charErr.Index)
	})
}

func TestMustFromHexPanics(t *testing.T) {
	assert.Panics(t, func() { MustFromHex("nope") })
}

func TestRandomnessString(t *testing.T) {
	assert.Equal(t, "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62", seedH.String())
}

func TestRandomnessJSON(t *testing.T) {
	type wrapper struct {
		R Randomness `json:"r"`
	}

	data, err := json.Marshal(wrapper{R: seedH})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":"9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62"}`, string(data))

	var back wrapper
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, seedH, back.R)

	err = json.Unmarshal([]byte(`{"r":"00"}`), &back)
	assert.Error(t, err)
}
