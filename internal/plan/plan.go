// Package plan runs draw plans: HCL files that name a seed and a list of
// draws, each of which can be recomputed and checked by anyone holding the
// plan.
package plan

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fairdraw/draw"
)

// Kind names what a draw produces.
type Kind string

const (
	KindCoinFlip Kind = "coinflip"
	KindDice     Kind = "dice"
	KindInt      Kind = "int"
	KindDecimal  Kind = "decimal"
	KindShuffle  Kind = "shuffle"
	KindPick     Kind = "pick"
	KindWeighted Kind = "weighted"
	KindSub      Kind = "sub"
)

const DefaultOutput = "results.json"

var ErrInvalidPlan = errors.New("invalid plan")

// Plan is a parsed plan file.
type Plan struct {
	Settings Settings `hcl:"plan,block"`
	Draws    []Draw   `hcl:"draw,block"`
}

// Settings is the plan block.
type Settings struct {
	Seed        string `hcl:"seed"`
	Description string `hcl:"description,optional"`
	Output      string `hcl:"output,optional"`
}

// Draw is one draw block. Which attributes apply depends on Kind.
type Draw struct {
	Name    string   `hcl:"name,label"`
	Kind    Kind     `hcl:"kind"`
	Begin   int64    `hcl:"begin,optional"`
	End     int64    `hcl:"end,optional"`
	Count   int      `hcl:"count,optional"`
	N       int      `hcl:"n,optional"`
	Items   []string `hcl:"items,optional"`
	Weights []int64  `hcl:"weights,optional"`
}

// Load reads and validates a plan file.
func Load(filename string) (*Plan, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes and validates plan source. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Plan, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var p Plan
	diags = gohcl.DecodeBody(file.Body, nil, &p)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	p.applyDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) applyDefaults() {
	if p.Settings.Output == "" {
		p.Settings.Output = DefaultOutput
	}
	for i := range p.Draws {
		d := &p.Draws[i]
		if (d.Kind == KindInt || d.Kind == KindSub) && d.Count == 0 {
			d.Count = 1
		}
	}
}

// Seed decodes the plan seed.
func (p *Plan) Seed() (draw.Randomness, error) {
	return draw.FromHex(p.Settings.Seed)
}

// Validate checks the plan without running it.
func (p *Plan) Validate() error {
	if _, err := p.Seed(); err != nil {
		return fmt.Errorf("%w: seed: %v", ErrInvalidPlan, err)
	}
	if len(p.Draws) == 0 {
		return fmt.Errorf("%w: at least one draw must be configured", ErrInvalidPlan)
	}

	seen := make(map[string]bool, len(p.Draws))
	for _, d := range p.Draws {
		if seen[d.Name] {
			return fmt.Errorf("%w: duplicate draw %q", ErrInvalidPlan, d.Name)
		}
		seen[d.Name] = true
		if err := d.validate(); err != nil {
			return fmt.Errorf("%w: draw %s: %v", ErrInvalidPlan, d.Name, err)
		}
	}
	return nil
}

func (d *Draw) validate() error {
	switch d.Kind {
	case KindCoinFlip, KindDice, KindDecimal:
		return nil
	case KindInt:
		if d.End < d.Begin {
			return fmt.Errorf("end %d is smaller than begin %d", d.End, d.Begin)
		}
		if d.Count < 1 {
			return errors.New("count must be positive")
		}
	case KindSub:
		if d.Count < 1 {
			return errors.New("count must be positive")
		}
	case KindShuffle:
		if len(d.Items) == 0 {
			return errors.New("items must not be empty")
		}
	case KindPick:
		if d.N < 0 || d.N > len(d.Items) {
			return fmt.Errorf("n must be between 0 and %d", len(d.Items))
		}
	case KindWeighted:
		if len(d.Items) == 0 {
			return errors.New("items must not be empty")
		}
		if len(d.Items) != len(d.Weights) {
			return errors.New("items and weights must have the same length")
		}
		for i, w := range d.Weights {
			if w < 1 || w > math.MaxUint32 {
				return fmt.Errorf("weight %d of %q must be between 1 and %d", w, d.Items[i], uint32(math.MaxUint32))
			}
		}
	default:
		return fmt.Errorf("unknown kind %q", d.Kind)
	}
	return nil
}
