package main

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/fairdraw/cmd/fairdraw/shared"
)

// emit prints value as JSON when --json is set, otherwise the text lines.
func (g *Globals) emit(value any, lines ...string) error {
	if g.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(g.Out, line); err != nil {
			return err
		}
	}
	return nil
}

func (g *Globals) logger() zerolog.Logger {
	if g.JSON {
		return shared.SetupStructuredLogger(g.Debug)
	}
	return shared.SetupLogger(g.Debug)
}
