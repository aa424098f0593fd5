// Package uniformity measures how evenly IntInRange covers a range when
// every trial gets its own sub-randomness.
package uniformity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/fairdraw/draw"
	"github.com/lox/fairdraw/internal/statistics"
)

// DefaultKey namespaces the sub-randomness used for trials.
const DefaultKey = "uniformity"

const defaultBatchSize = 1024

// Config describes one run. Zero values get defaults from Run.
type Config struct {
	Seed       draw.Randomness
	Key        string
	Begin, End int64
	Trials     int
	Workers    int
	BatchSize  int

	Clock  quartz.Clock
	Logger zerolog.Logger

	// OnBatch is called after each batch is counted, with the number of
	// trials done so far. Calls are serialized.
	OnBatch func(done int)
}

// Result is the outcome of a run.
type Result struct {
	Histogram *statistics.Histogram
	Elapsed   time.Duration
}

// Rate returns trials per second, or 0 when no time was measured.
func (r *Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Histogram.Total) / r.Elapsed.Seconds()
}

func (c *Config) validate() error {
	if c.End < c.Begin {
		return fmt.Errorf("%w: [%d, %d]", draw.ErrEmptyRange, c.Begin, c.End)
	}
	if c.Trials <= 0 {
		return errors.New("trials must be positive")
	}
	if c.Workers < 0 || c.BatchSize < 0 {
		return errors.New("workers and batch size must not be negative")
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return nil
}

// Run draws cfg.Trials values and returns their histogram. Sub-randomness
// is pulled from a single provider in order and handed out in batches, so
// the histogram does not depend on the number of workers.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	total, err := statistics.NewHistogram(cfg.Begin, cfg.End)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Debug().
		Int64("begin", cfg.Begin).
		Int64("end", cfg.End).
		Int("trials", cfg.Trials).
		Int("workers", cfg.Workers).
		Msg("Starting uniformity run")

	start := cfg.Clock.Now()
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []draw.Randomness, cfg.Workers)

	g.Go(func() error {
		defer close(batches)
		provider := draw.SubRandomnessWithKey(cfg.Seed, cfg.Key)
		for remaining := cfg.Trials; remaining > 0; {
			n := min(remaining, cfg.BatchSize)
			select {
			case batches <- provider.Take(n):
				remaining -= n
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	done := 0
	for range cfg.Workers {
		g.Go(func() error {
			local, err := statistics.NewHistogram(cfg.Begin, cfg.End)
			if err != nil {
				return err
			}
			for batch := range batches {
				for _, r := range batch {
					v, err := draw.IntInRange(r, cfg.Begin, cfg.End)
					if err != nil {
						return err
					}
					if err := local.Add(v); err != nil {
						return err
					}
				}

				mu.Lock()
				done += len(batch)
				if cfg.OnBatch != nil {
					cfg.OnBatch(done)
				}
				mu.Unlock()

				if ctx.Err() != nil {
					return ctx.Err()
				}
			}

			mu.Lock()
			defer mu.Unlock()
			return total.Merge(local)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("uniformity run: %w", err)
	}

	res := &Result{Histogram: total, Elapsed: cfg.Clock.Since(start)}
	cfg.Logger.Info().
		Uint64("trials", total.Total).
		Dur("elapsed", res.Elapsed).
		Float64("max_deviation", total.MaxRelativeDeviation()).
		Msg("Uniformity run complete")
	return res, nil
}
