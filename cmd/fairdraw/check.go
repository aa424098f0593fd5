package main

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/fairdraw/cmd/fairdraw/shared"
	"github.com/lox/fairdraw/draw"
	"github.com/lox/fairdraw/internal/statistics"
	"github.com/lox/fairdraw/internal/uniformity"
)

const (
	barWidth = 40
	maxRows  = 64
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

type CheckCmd struct {
	Seed    string  `help:"Randomness as 64 hex characters (defaults to the simulated value for height 0)"`
	Key     string  `default:"uniformity" help:"Sub-randomness key for trials"`
	Begin   int64   `default:"1" help:"Lowest value"`
	End     int64   `default:"6" help:"Highest value"`
	Trials  int     `short:"t" default:"100000" help:"Number of trials"`
	Workers int     `short:"w" help:"Worker goroutines (defaults to GOMAXPROCS)"`
	Alpha   float64 `default:"0.001" help:"Fail when the chi-square p-value is below this"`
}

type checkReport struct {
	Summary statistics.Summary `json:"summary"`
	Counts  []uint64           `json:"counts"`
	Rate    float64            `json:"trials_per_second"`
	Pass    bool               `json:"pass"`
}

func (c *CheckCmd) seed() (draw.Randomness, error) {
	if c.Seed == "" {
		return draw.SimulateRandomness(0), nil
	}
	return draw.FromHex(c.Seed)
}

func (c *CheckCmd) Run(g *Globals) error {
	logger := g.logger()

	seed, err := c.seed()
	if err != nil {
		return err
	}
	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := shared.SignalContext(context.Background(), logger)
	defer cancel()

	step := max(c.Trials/10, 1)
	next := step
	result, err := uniformity.Run(ctx, uniformity.Config{
		Seed:    seed,
		Key:     c.Key,
		Begin:   c.Begin,
		End:     c.End,
		Trials:  c.Trials,
		Workers: workers,
		Logger:  logger,
		OnBatch: func(done int) {
			if done >= next {
				logger.Debug().Int("done", done).Int("trials", c.Trials).Msg("Progress")
				next = done + step
			}
		},
	})
	if err != nil {
		return err
	}

	summary, err := result.Histogram.Summarize()
	if err != nil {
		return err
	}
	pass := summary.PValue >= c.Alpha

	if g.JSON {
		return g.emit(checkReport{
			Summary: summary,
			Counts:  result.Histogram.Counts,
			Rate:    result.Rate(),
			Pass:    pass,
		})
	}

	fmt.Fprint(g.Out, renderHistogram(result.Histogram))
	fmt.Fprintln(g.Out, renderSummary(summary, result.Rate(), pass))
	if !pass {
		return fmt.Errorf("p-value %.6f is below %g", summary.PValue, c.Alpha)
	}
	return nil
}

// renderHistogram draws one bar per bin, scaled to the fullest bin. Wide
// ranges are not drawn.
func renderHistogram(h *statistics.Histogram) string {
	if len(h.Counts) > maxRows {
		return fmt.Sprintf("%d bins, histogram omitted\n", len(h.Counts))
	}

	var peak uint64
	for _, n := range h.Counts {
		peak = max(peak, n)
	}

	labelWidth := max(len(strconv.FormatInt(h.Begin, 10)), len(strconv.FormatInt(h.End(), 10)))
	expected := h.Expected()

	var b strings.Builder
	for i, n := range h.Counts {
		size := 0
		if peak > 0 {
			size = int(n * barWidth / peak)
		}
		label := fmt.Sprintf("%*d", labelWidth, h.Begin+int64(i))
		dev := 0.0
		if expected > 0 {
			dev = (float64(n) - expected) / expected * 100
		}
		fmt.Fprintf(&b, "%s %s%s %d (%+.2f%%)\n",
			labelStyle.Render(label),
			barStyle.Render(strings.Repeat("█", size)),
			strings.Repeat(" ", barWidth-size),
			n, dev)
	}
	return b.String()
}

func renderSummary(s statistics.Summary, rate float64, pass bool) string {
	verdict := passStyle.Render("PASS")
	if !pass {
		verdict = failStyle.Render("FAIL")
	}

	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("Summary"))
	fmt.Fprintf(&b, "  trials:        %d over %d bins\n", s.Total, s.Bins)
	fmt.Fprintf(&b, "  expected/bin:  %.2f\n", s.Expected)
	fmt.Fprintf(&b, "  min/max:       %.0f / %.0f\n", s.Min, s.Max)
	fmt.Fprintf(&b, "  std dev:       %.2f\n", s.StdDev)
	fmt.Fprintf(&b, "  max deviation: %.4f%%\n", s.MaxDeviation*100)
	fmt.Fprintf(&b, "  chi-square:    %.4f\n", s.ChiSquare)
	fmt.Fprintf(&b, "  p-value:       %.6f\n", s.PValue)
	if rate > 0 {
		fmt.Fprintf(&b, "  rate:          %.0f trials/s\n", rate)
	}
	fmt.Fprintf(&b, "  result:        %s", verdict)
	return b.String()
}
