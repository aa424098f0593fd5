package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Op names a bridge operation.
type Op string

const (
	OpCoinFlip           Op = "coinflip"
	OpRollDice           Op = "roll_dice"
	OpIntInRange         Op = "int_in_range"
	OpRandomDecimal      Op = "random_decimal"
	OpSubRandomness      Op = "sub_randomness"
	OpShuffle            Op = "shuffle"
	OpPick               Op = "pick"
	OpSelectFromWeighted Op = "select_from_weighted"
)

var ErrUnknownOp = errors.New("unknown op")

// Request is one call across the bridge. Numeric fields are left untyped so
// a string where a number belongs is reported the way a JavaScript caller
// expects.
type Request struct {
	ID         string   `json:"id"`
	Op         Op       `json:"op"`
	Randomness string   `json:"randomness"`
	Begin      any      `json:"begin,omitempty"`
	End        any      `json:"end,omitempty"`
	Count      any      `json:"count,omitempty"`
	N          any      `json:"n,omitempty"`
	Items      []string `json:"items,omitempty"`
	Weights    []any    `json:"weights,omitempty"`
}

// Response answers the Request with the same ID. Exactly one of Result and
// Error is set. Result is a string, a float64 or a []string.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Handle runs req and never fails; errors are reported in the Response.
func Handle(req Request) Response {
	result, err := dispatch(req)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func dispatch(req Request) (any, error) {
	switch req.Op {
	case OpCoinFlip:
		return CoinFlip(req.Randomness)
	case OpRollDice:
		v, err := RollDice(req.Randomness)
		return float64(v), err
	case OpIntInRange:
		v, err := IntInRange(req.Randomness, req.Begin, req.End)
		return float64(v), err
	case OpRandomDecimal:
		return RandomDecimal(req.Randomness)
	case OpSubRandomness:
		return SubRandomness(req.Randomness, req.Count)
	case OpShuffle:
		return Shuffle(req.Randomness, req.Items)
	case OpPick:
		return Pick(req.Randomness, req.N, req.Items)
	case OpSelectFromWeighted:
		return SelectFromWeighted(req.Randomness, req.Items, req.Weights)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}
}

// UnmarshalJSON decodes r and normalizes Result.
func (r *Response) UnmarshalJSON(data []byte) error {
	type plain Response
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Response(p)
	r.Result = normalizeResult(r.Result)
	return nil
}

// normalizeResult maps decoded values back onto the Result types.
func normalizeResult(v any) any {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return v
			}
			out[i] = s
		}
		return out
	}
	return v
}
