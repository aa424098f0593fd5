package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/fairdraw/draw"
)

type CoinFlipCmd struct {
	Randomness string `arg:"" help:"Randomness as 64 hex characters"`
}

func (c *CoinFlipCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	side := draw.CoinFlip(r).String()
	return g.emit(side, side)
}

type DiceCmd struct {
	Randomness string `arg:"" help:"Randomness as 64 hex characters"`
}

func (c *DiceCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	v := draw.RollDice(r)
	return g.emit(v, strconv.Itoa(int(v)))
}

type IntCmd struct {
	Randomness string `arg:"" help:"Randomness as 64 hex characters"`
	Begin      int64  `arg:"" help:"Lowest value"`
	End        int64  `arg:"" help:"Highest value"`
	Count      int    `short:"n" default:"1" help:"Number of values to draw"`
}

func (c *IntCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}

	var values []int64
	if c.Count == 1 {
		v, err := draw.IntInRange(r, c.Begin, c.End)
		if err != nil {
			return err
		}
		values = []int64{v}
	} else {
		values, err = draw.IntsInRange(r, c.Count, c.Begin, c.End)
		if err != nil {
			return err
		}
	}

	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = strconv.FormatInt(v, 10)
	}
	return g.emit(values, lines...)
}

type DecimalCmd struct {
	Randomness string `arg:"" help:"Randomness as 64 hex characters"`
}

func (c *DecimalCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	d := draw.RandomDecimal(r)
	return g.emit(d, d.String())
}

type ShuffleCmd struct {
	Randomness string   `arg:"" help:"Randomness as 64 hex characters"`
	Items      []string `arg:"" optional:"" help:"Items to shuffle"`
}

func (c *ShuffleCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	out := draw.Shuffle(r, c.Items)
	return g.emit(out, out...)
}

type PickCmd struct {
	Randomness string   `arg:"" help:"Randomness as 64 hex characters"`
	N          int      `arg:"" help:"Number of items to pick"`
	Items      []string `arg:"" optional:"" help:"Items to pick from"`
}

func (c *PickCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	out, err := draw.Pick(r, c.N, c.Items)
	if err != nil {
		return err
	}
	return g.emit(out, out...)
}

type WeightedCmd struct {
	Randomness string   `arg:"" help:"Randomness as 64 hex characters"`
	Items      []string `arg:"" help:"Items as name=weight"`
}

// parseWeighted splits name=weight pairs. The last '=' separates the
// weight so names may contain '='.
func parseWeighted(args []string) ([]draw.Weighted[string], error) {
	list := make([]draw.Weighted[string], 0, len(args))
	for _, arg := range args {
		i := strings.LastIndexByte(arg, '=')
		if i < 0 {
			return nil, fmt.Errorf("item %q: expected name=weight", arg)
		}
		w, err := strconv.ParseUint(arg[i+1:], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("item %q: invalid weight: %w", arg, err)
		}
		list = append(list, draw.W(arg[:i], uint32(w)))
	}
	return list, nil
}

func (c *WeightedCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}
	list, err := parseWeighted(c.Items)
	if err != nil {
		return err
	}
	v, err := draw.SelectFromWeighted(r, list)
	if err != nil {
		return err
	}
	return g.emit(v, v)
}

type SubCmd struct {
	Randomness string  `arg:"" help:"Randomness as 64 hex characters"`
	Count      int     `short:"n" default:"1" help:"Number of values to derive"`
	Key        *string `short:"k" help:"Derivation key; omit for the default key (an explicit empty key is allowed)"`
}

func (c *SubCmd) Run(g *Globals) error {
	r, err := draw.FromHex(c.Randomness)
	if err != nil {
		return err
	}

	provider := draw.SubRandomness(r)
	if c.Key != nil {
		provider = draw.SubRandomnessWithKey(r, *c.Key)
	}

	values := provider.Take(c.Count)
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = v.String()
	}
	return g.emit(lines, lines...)
}

type SimulateCmd struct {
	Height uint64 `arg:"" help:"Block height"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	r := draw.SimulateRandomness(c.Height)
	return g.emit(r, r.String())
}
