package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lox/fairdraw/internal/plan"
)

var errVerifyFailed = errors.New("results do not match the plan")

type PlanCmd struct {
	Run    PlanRunCmd    `cmd:"" help:"Run a plan and write its results"`
	Verify PlanVerifyCmd `cmd:"" help:"Recompute a plan and compare it with recorded results"`
}

type PlanRunCmd struct {
	File   string `arg:"" type:"existingfile" help:"Plan file (HCL)"`
	Output string `short:"o" help:"Results file (defaults to the plan's output, next to the plan)"`
}

// resultsPath resolves the plan's output relative to the plan file unless
// an explicit path was given.
func resultsPath(file, override string, p *plan.Plan) string {
	if override != "" {
		return override
	}
	if filepath.IsAbs(p.Settings.Output) {
		return p.Settings.Output
	}
	return filepath.Join(filepath.Dir(file), p.Settings.Output)
}

func (c *PlanRunCmd) Run(g *Globals) error {
	logger := g.logger()

	p, err := plan.Load(c.File)
	if err != nil {
		return err
	}

	results, err := plan.Run(p, logger)
	if err != nil {
		return err
	}

	path := resultsPath(c.File, c.Output, p)
	if err := plan.WriteResults(path, results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	logger.Info().Str("path", path).Msg("Results written")

	lines := make([]string, len(results.Draws))
	for i, d := range results.Draws {
		lines[i] = fmt.Sprintf("%s: %s", d.Name, strings.Join(d.Values, ", "))
	}
	return g.emit(results, lines...)
}

type PlanVerifyCmd struct {
	File    string `arg:"" type:"existingfile" help:"Plan file (HCL)"`
	Results string `arg:"" optional:"" help:"Results file (defaults to the plan's output, next to the plan)"`
}

func (c *PlanVerifyCmd) Run(g *Globals) error {
	logger := g.logger()

	p, err := plan.Load(c.File)
	if err != nil {
		return err
	}

	path := resultsPath(c.File, c.Results, p)
	recorded, err := plan.ReadResults(path)
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	mismatches, err := plan.Verify(p, recorded)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		logger.Error().Str("draw", m.Name).Strs("recorded", m.Got).Strs("recomputed", m.Want).Msg("Mismatch")
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%w: %d of %d draws differ", errVerifyFailed, len(mismatches), len(p.Draws))
	}

	msg := fmt.Sprintf("ok: %d draws verified", len(p.Draws))
	return g.emit(map[string]any{"ok": true, "draws": len(p.Draws)}, msg)
}
