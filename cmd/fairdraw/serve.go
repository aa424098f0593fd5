package main

import (
	"context"
	"os"

	"github.com/lox/fairdraw/cmd/fairdraw/shared"
	"github.com/lox/fairdraw/internal/server"
)

type ServeCmd struct {
	Addr string `kong:"default=':8080',help='Server address'"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger := g.logger()
	ctx, cancel := shared.SignalContext(context.Background(), logger)
	defer cancel()

	srv := server.NewServer(c.Addr, shared.SetupServerLogger(os.Stderr, g.Debug))
	logger.Info().Str("addr", c.Addr).Msg("Serving draws on /ws")
	return srv.ListenAndServe(ctx)
}
