package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fairdraw/draw"
	"github.com/lox/fairdraw/internal/plan"
	"github.com/lox/fairdraw/internal/statistics"
)

const beacon = "9e8e26615f51552aa3b18b6f0bcf0dae5afbe30321e8d7ea7fa51ebeb1d8fe62"

// Sub-randomness of the raffle plan below, one per draw.
const (
	tossRandomness     = "8c4efa3c8baabd8aff809bd647c67199c601a2537fb034cd87554f50b8a774e6"
	dieRandomness      = "d13593681ca3ec8cdeae553ed02ea55f19b3e81e4660f16d6d5661cd3c5bb2dd"
	ticketsRandomness  = "8dace7b4518759cf565d74fc6befa887122e34a01c6d394d55923492538506be"
	prizeRandomness    = "ad6cc7b56b49f0a7b117fbf6c064fbb34cd9de312e8a64d2c0bee6a7bf16480a"
	orderRandomness    = "b51cee6614711d7bd8a6364ded9352fc9cce4a7f40b86e4ba64bb4d077334887"
	winnersRandomness  = "19aa874eb808fa3b2abffc5e74f8e73ce34a682a7884163fa32bb1c908d8c02c"
	hatRandomness      = "f7c710259b7a10a2385cd8ecd63becb6cd90689e7a5c026472aaeaaaf758a378"
	childrenRandomness = "9c6119b1f51ef5ab8f3ec53be12c33fc1f561127802b7a2b118b3b97f968b7d5"
)

const rafflePlan = `
plan {
  seed        = "` + beacon + `"
  description = "Quarterly raffle"
}

draw "toss" {
  kind = "coinflip"
}

draw "tickets" {
  kind  = "int"
  begin = 1
  end   = 100
  count = 3
}

draw "winners" {
  kind  = "pick"
  n     = 2
  items = ["bob", "mary", "su", "marc"]
}
`

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	cli.Out = &out
	err = ctx.Run(&cli.Globals)
	return out.String(), err
}

func TestDrawCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"coinflip", []string{"coinflip", tossRandomness}, "heads\n"},
		{"coinflip beacon", []string{"coinflip", beacon}, "heads\n"},
		{"dice", []string{"dice", dieRandomness}, "5\n"},
		{"dice beacon", []string{"dice", beacon}, "2\n"},
		{"int", []string{"int", beacon, "1", "6"}, "2\n"},
		{"ints", []string{"int", ticketsRandomness, "1", "100", "-n", "3"}, "14\n28\n42\n"},
		{"decimal", []string{"decimal", prizeRandomness}, "0.740709334943519105\n"},
		{"shuffle", []string{"shuffle", orderRandomness, "a", "b", "c", "d"}, "a\nc\nb\nd\n"},
		{"pick", []string{"pick", winnersRandomness, "2", "bob", "mary", "su", "marc"}, "mary\nsu\n"},
		{"weighted", []string{"weighted", hatRandomness, "green hat=40", "viking helmet=55", "rare golden crown=5"}, "green hat\n"},
		{"sub", []string{"sub", childrenRandomness, "-n", "2"},
			"efd058e59693bb0942c04c39428c7d8d16377983ef55daca6579e5fe71d5188b\n" +
				"2add0e0435264460fba0829dcaef5f16c06a5906952251c1590784f7490223c8\n"},
		{"simulate", []string{"simulate", "12345"}, "f72a57b9baa23c55ca546c5677986c8b75c4509a09489f5d2634fb586740100a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDrawCommandsJSON(t *testing.T) {
	out, err := run(t, "--json", "decimal", prizeRandomness)
	require.NoError(t, err)
	assert.Equal(t, "\"0.740709334943519105\"\n", out)

	out, err = run(t, "--json", "int", ticketsRandomness, "1", "100", "--count", "3")
	require.NoError(t, err)
	var values []int64
	require.NoError(t, json.Unmarshal([]byte(out), &values))
	assert.Equal(t, []int64{14, 28, 42}, values)
}

func TestDrawCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short randomness", []string{"coinflip", "abc"}, "expected 64 hex characters but got an input of 3 bytes"},
		{"empty range", []string{"int", beacon, "6", "1"}, "empty range"},
		{"pick too many", []string{"pick", beacon, "3", "a", "b"}, "more"},
		{"weight missing", []string{"weighted", beacon, "a"}, "expected name=weight"},
		{"zero weights", []string{"weighted", beacon, "a=0", "b=0"}, "weight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseWeighted(t *testing.T) {
	list, err := parseWeighted([]string{"a=1", "x=y=7"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Element)
	assert.Equal(t, uint32(1), list[0].Weight)
	assert.Equal(t, "x=y", list[1].Element)
	assert.Equal(t, uint32(7), list[1].Weight)

	_, err = parseWeighted([]string{"a=-1"})
	assert.Error(t, err)
	_, err = parseWeighted([]string{"a=4294967296"})
	assert.Error(t, err)
}

func TestPlanRunAndVerify(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "raffle.hcl")
	require.NoError(t, os.WriteFile(file, []byte(rafflePlan), 0o644))

	out, err := run(t, "plan", "run", file)
	require.NoError(t, err)
	assert.Equal(t, "toss: heads\ntickets: 14, 28, 42\nwinners: mary, su\n", out)

	results, err := plan.ReadResults(filepath.Join(dir, plan.DefaultOutput))
	require.NoError(t, err)
	require.Len(t, results.Draws, 3)
	assert.Equal(t, tossRandomness, results.Draws[0].Randomness)

	out, err = run(t, "plan", "verify", file)
	require.NoError(t, err)
	assert.Equal(t, "ok: 3 draws verified\n", out)

	results.Draws[1].Values = []string{"1", "2", "3"}
	tampered := filepath.Join(dir, "tampered.json")
	require.NoError(t, plan.WriteResults(tampered, results))

	_, err = run(t, "plan", "verify", file, tampered)
	require.ErrorIs(t, err, errVerifyFailed)
	assert.Contains(t, err.Error(), "1 of 3 draws differ")
}

func TestPlanRunOutputFlag(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "raffle.hcl")
	require.NoError(t, os.WriteFile(file, []byte(rafflePlan), 0o644))
	output := filepath.Join(dir, "custom.json")

	_, err := run(t, "plan", "run", file, "-o", output)
	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.NoFileExists(t, filepath.Join(dir, plan.DefaultOutput))
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "--trials", "6000", "--workers", "2", "--alpha", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "6000 over 6 bins")
	assert.Contains(t, out, "PASS")

	out, err = run(t, "--json", "check", "--seed", beacon, "--begin", "0", "--end", "9", "--trials", "1000", "--alpha", "0")
	require.NoError(t, err)

	var report struct {
		Counts []uint64 `json:"counts"`
		Pass   bool     `json:"pass"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Counts, 10)
	assert.True(t, report.Pass)

	var total uint64
	for _, n := range report.Counts {
		total += n
	}
	assert.Equal(t, uint64(1000), total)
}

func TestRenderHistogram(t *testing.T) {
	h, err := statistics.NewHistogram(8, 10)
	require.NoError(t, err)
	h.Counts = []uint64{10, 20, 40}
	h.Total = 70

	lines := strings.Split(strings.TrimSuffix(renderHistogram(h), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 10, strings.Count(lines[0], "█"))
	assert.Equal(t, 20, strings.Count(lines[1], "█"))
	assert.Equal(t, barWidth, strings.Count(lines[2], "█"))
	assert.Contains(t, lines[0], " 8 ")
	assert.Contains(t, lines[2], "10 ")
	assert.Contains(t, lines[2], "40 (+71.43%)")

	wide, err := statistics.NewHistogram(1, maxRows+1)
	require.NoError(t, err)
	assert.Equal(t, "65 bins, histogram omitted\n", renderHistogram(wide))
}

func TestSubKey(t *testing.T) {
	seed := strings.Repeat("a6", 32)

	out, err := run(t, "sub", seed, "-k", "A")
	require.NoError(t, err)
	assert.Equal(t, "221437dfe9174740ad487d0d239a152f0b99d703657215879f155d34e8b49edb\n", out)

	defaultKey, err := run(t, "sub", seed)
	require.NoError(t, err)
	explicitDefault, err := run(t, "sub", seed, "--key", draw.DefaultSubRandomnessKey)
	require.NoError(t, err)
	assert.Equal(t, defaultKey, explicitDefault)

	emptyKey, err := run(t, "sub", seed, "--key=")
	require.NoError(t, err)
	assert.NotEqual(t, defaultKey, emptyKey, "an empty key is a key of its own")

	want := draw.SubRandomnessWithKey(draw.MustFromHex(seed), "").Provide().String()
	assert.Equal(t, want+"\n", emptyKey)
}
