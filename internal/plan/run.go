package plan

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/lox/fairdraw/draw"
	"github.com/lox/fairdraw/internal/fileutil"
)

// Results is the outcome of running a plan.
type Results struct {
	Seed        string   `json:"seed"`
	Description string   `json:"description,omitempty"`
	Draws       []Result `json:"draws"`
}

// Result is the outcome of one draw. Randomness is the sub-randomness the
// draw consumed, so a single draw can be checked without the others.
type Result struct {
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	Randomness string   `json:"randomness"`
	Values     []string `json:"values"`
}

// Mismatch is a difference found by Verify.
type Mismatch struct {
	Name string
	Want []string
	Got  []string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: recorded %v, recomputed %v", m.Name, m.Got, m.Want)
}

// DrawRandomness is the sub-randomness a draw named name uses. It depends
// only on the seed and the name, so adding or reordering draws leaves the
// existing results unchanged.
func DrawRandomness(seed draw.Randomness, name string) draw.Randomness {
	return draw.SubRandomnessWithKey(seed, "draw/"+name).Provide()
}

// Run executes every draw of p.
func Run(p *Plan, logger zerolog.Logger) (*Results, error) {
	seed, err := p.Seed()
	if err != nil {
		return nil, err
	}

	out := &Results{
		Seed:        seed.String(),
		Description: p.Settings.Description,
		Draws:       make([]Result, 0, len(p.Draws)),
	}
	for _, d := range p.Draws {
		r := DrawRandomness(seed, d.Name)
		values, err := d.run(r)
		if err != nil {
			return nil, fmt.Errorf("draw %s: %w", d.Name, err)
		}
		logger.Debug().
			Str("draw", d.Name).
			Str("kind", string(d.Kind)).
			Strs("values", values).
			Msg("Draw complete")
		out.Draws = append(out.Draws, Result{
			Name:       d.Name,
			Kind:       d.Kind,
			Randomness: r.String(),
			Values:     values,
		})
	}

	logger.Info().Int("draws", len(out.Draws)).Msg("Plan complete")
	return out, nil
}

func (d *Draw) run(r draw.Randomness) ([]string, error) {
	switch d.Kind {
	case KindCoinFlip:
		return []string{draw.CoinFlip(r).String()}, nil
	case KindDice:
		return []string{strconv.Itoa(int(draw.RollDice(r)))}, nil
	case KindInt:
		vs, err := draw.IntsInRange(r, d.Count, d.Begin, d.End)
		if err != nil {
			return nil, err
		}
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strconv.FormatInt(v, 10)
		}
		return out, nil
	case KindDecimal:
		return []string{draw.RandomDecimal(r).String()}, nil
	case KindShuffle:
		return draw.Shuffle(r, d.Items), nil
	case KindPick:
		return draw.Pick(r, d.N, d.Items)
	case KindWeighted:
		list := make([]draw.Weighted[string], len(d.Items))
		for i, item := range d.Items {
			list[i] = draw.W(item, uint32(d.Weights[i]))
		}
		v, err := draw.SelectFromWeighted(r, list)
		if err != nil {
			return nil, err
		}
		return []string{v}, nil
	case KindSub:
		subs := draw.SubRandomness(r).Take(d.Count)
		out := make([]string, len(subs))
		for i, s := range subs {
			out[i] = s.String()
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown kind %q", d.Kind)
}

// Verify recomputes p and compares it with recorded results. A draw that
// is missing from results counts as a mismatch with no recorded values.
func Verify(p *Plan, recorded *Results) ([]Mismatch, error) {
	fresh, err := Run(p, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	if recorded.Seed != fresh.Seed {
		return nil, fmt.Errorf("results were produced from seed %s, plan uses %s", recorded.Seed, fresh.Seed)
	}

	byName := make(map[string]Result, len(recorded.Draws))
	for _, r := range recorded.Draws {
		byName[r.Name] = r
	}

	var mismatches []Mismatch
	for _, want := range fresh.Draws {
		got, ok := byName[want.Name]
		if !ok || got.Kind != want.Kind || !slices.Equal(got.Values, want.Values) {
			mismatches = append(mismatches, Mismatch{Name: want.Name, Want: want.Values, Got: got.Values})
		}
	}
	return mismatches, nil
}

// WriteResults stores results as JSON at path.
func WriteResults(path string, results *Results) error {
	return fileutil.WriteJSONAtomic(path, results, 0o644)
}

// ReadResults loads results written by WriteResults.
func ReadResults(path string) (*Results, error) {
	var r Results
	if err := fileutil.ReadJSON(path, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
