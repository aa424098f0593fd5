// Package statistics summarizes how evenly a sampler fills a range.
package statistics

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// MaxBins bounds the size of a Histogram.
const MaxBins = 1 << 20

var (
	ErrOutOfRange    = errors.New("value outside histogram range")
	ErrShapeMismatch = errors.New("histograms cover different ranges")
)

// Histogram counts integer outcomes in [Begin, Begin+len(Counts)).
type Histogram struct {
	Begin  int64
	Counts []uint64
	Total  uint64
}

// Summary describes the spread of the per-bin counts. MaxDeviation is the
// largest |count-expected|/expected over all bins.
type Summary struct {
	Bins         int
	Total        uint64
	Expected     float64
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	MaxDeviation float64
	ChiSquare    float64
	PValue       float64
}

// NewHistogram returns an empty histogram over [begin, end].
func NewHistogram(begin, end int64) (*Histogram, error) {
	if end < begin {
		return nil, fmt.Errorf("empty range [%d, %d]", begin, end)
	}
	n := uint64(end-begin) + 1
	if n == 0 || n > MaxBins {
		return nil, fmt.Errorf("range [%d, %d] needs more than %d bins", begin, end, MaxBins)
	}
	return &Histogram{Begin: begin, Counts: make([]uint64, n)}, nil
}

// End returns the largest value the histogram counts.
func (h *Histogram) End() int64 {
	return h.Begin + int64(len(h.Counts)) - 1
}

// Add counts one outcome.
func (h *Histogram) Add(v int64) error {
	if v < h.Begin || v > h.End() {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, h.Begin, h.End())
	}
	h.Counts[v-h.Begin]++
	h.Total++
	return nil
}

// Merge adds the counts of o, which must cover the same range.
func (h *Histogram) Merge(o *Histogram) error {
	if o.Begin != h.Begin || len(o.Counts) != len(h.Counts) {
		return ErrShapeMismatch
	}
	for i, c := range o.Counts {
		h.Counts[i] += c
	}
	h.Total += o.Total
	return nil
}

// Expected is the count every bin would hold under a perfect uniform
// distribution.
func (h *Histogram) Expected() float64 {
	return float64(h.Total) / float64(len(h.Counts))
}

// MaxRelativeDeviation returns max |count-expected|/expected.
func (h *Histogram) MaxRelativeDeviation() float64 {
	e := h.Expected()
	if e == 0 {
		return 0
	}
	worst := 0.0
	for _, c := range h.Counts {
		worst = math.Max(worst, math.Abs(float64(c)-e)/e)
	}
	return worst
}

// ChiSquare returns Pearson's statistic against the uniform distribution.
func (h *Histogram) ChiSquare() float64 {
	e := h.Expected()
	if e == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range h.Counts {
		d := float64(c) - e
		sum += d * d / e
	}
	return sum
}

// PValue is the probability of a chi-square at least this large if the
// sampler were uniform. A single bin always yields 1.
func (h *Histogram) PValue() float64 {
	df := len(h.Counts) - 1
	if df < 1 {
		return 1
	}
	return distuv.ChiSquared{K: float64(df)}.Survival(h.ChiSquare())
}

// Within reports whether every bin is within tolerance of the expected
// count, as a fraction of it.
func (h *Histogram) Within(tolerance float64) bool {
	return h.Total > 0 && h.MaxRelativeDeviation() <= tolerance
}

// Summarize computes a Summary. It fails on an empty histogram.
func (h *Histogram) Summarize() (Summary, error) {
	if h.Total == 0 {
		return Summary{}, errors.New("no samples")
	}

	data := make(stats.Float64Data, len(h.Counts))
	for i, c := range h.Counts {
		data[i] = float64(c)
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return Summary{}, err
	}
	lo, err := stats.Min(data)
	if err != nil {
		return Summary{}, err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Bins:         len(h.Counts),
		Total:        h.Total,
		Expected:     h.Expected(),
		Mean:         mean,
		StdDev:       stdDev,
		Min:          lo,
		Max:          hi,
		MaxDeviation: h.MaxRelativeDeviation(),
		ChiSquare:    h.ChiSquare(),
		PValue:       h.PValue(),
	}, nil
}
