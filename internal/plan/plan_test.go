package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePlan = `
plan {
  seed        = "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62"
  description = "Quarterly raffle"
}

draw "toss" {
  kind = "coinflip"
}

draw "die" {
  kind = "dice"
}

draw "tickets" {
  kind  = "int"
  begin = 1
  end   = 100
  count = 3
}

draw "prize" {
  kind = "decimal"
}

draw "order" {
  kind  = "shuffle"
  items = ["a", "b", "c", "d"]
}

draw "winners" {
  kind  = "pick"
  n     = 2
  items = ["bob", "mary", "su", "marc"]
}

draw "hat" {
  kind    = "weighted"
  items   = ["green hat", "viking helmet", "rare golden crown"]
  weights = [40, 55, 5]
}

draw "children" {
  kind  = "sub"
  count = 2
}
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(examplePlan), "raffle.hcl")
	require.NoError(t, err)

	assert.Equal(t, "Quarterly raffle", p.Settings.Description)
	assert.Equal(t, DefaultOutput, p.Settings.Output)
	require.Len(t, p.Draws, 8)

	tickets := p.Draws[2]
	assert.Equal(t, KindInt, tickets.Kind)
	assert.Equal(t, int64(1), tickets.Begin)
	assert.Equal(t, int64(100), tickets.End)
	assert.Equal(t, 3, tickets.Count)

	hat := p.Draws[6]
	assert.Equal(t, []int64{40, 55, 5}, hat.Weights)
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse([]byte(`
plan {
  seed   = "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62"
  output = "out.json"
}
draw "n" {
  kind = "int"
  end  = 10
}
`), "defaults.hcl")
	require.NoError(t, err)
	assert.Equal(t, "out.json", p.Settings.Output)
	assert.Equal(t, 1, p.Draws[0].Count)
}

func TestParseErrors(t *testing.T) {
	const seed = `plan { seed = "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62" }`

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `plan {`, "failed to parse HCL file"},
		{"missing plan", `draw "a" { kind = "dice" }`, "failed to decode HCL"},
		{"bad seed", `plan { seed = "abc" }
draw "a" { kind = "dice" }`, "seed"},
		{"no draws", seed, "at least one draw"},
		{"duplicate", seed + `
draw "a" { kind = "dice" }
draw "a" { kind = "coinflip" }`, "duplicate draw"},
		{"unknown kind", seed + `
draw "a" { kind = "roulette" }`, "unknown kind"},
		{"reversed range", seed + `
draw "a" {
  kind  = "int"
  begin = 5
  end   = 1
}`, "smaller than begin"},
		{"pick too many", seed + `
draw "a" {
  kind  = "pick"
  n     = 3
  items = ["x", "y"]
}`, "n must be between"},
		{"weights length", seed + `
draw "a" {
  kind    = "weighted"
  items   = ["x", "y"]
  weights = [1]
}`, "same length"},
		{"zero weight", seed + `
draw "a" {
  kind    = "weighted"
  items   = ["x"]
  weights = [0]
}`, "must be between 1"},
		{"empty shuffle", seed + `
draw "a" { kind = "shuffle" }`, "items must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.hcl")
	require.NoError(t, os.WriteFile(path, []byte(examplePlan), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Draws, 8)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
