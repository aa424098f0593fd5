package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug bool      `help:"Enable debug logging"`
	JSON  bool      `help:"Print results as JSON"`
	Out   io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version information"`

	CoinFlip CoinFlipCmd `cmd:"" name:"coinflip" help:"Flip a coin"`
	Dice     DiceCmd     `cmd:"" help:"Roll a six sided die"`
	Int      IntCmd      `cmd:"" help:"Draw integers from an inclusive range"`
	Decimal  DecimalCmd  `cmd:"" help:"Draw a decimal in [0, 1)"`
	Shuffle  ShuffleCmd  `cmd:"" help:"Shuffle a list of items"`
	Pick     PickCmd     `cmd:"" help:"Pick distinct items from a list"`
	Weighted WeightedCmd `cmd:"" help:"Select one item by weight"`
	Sub      SubCmd      `cmd:"" help:"Derive sub-randomness values"`
	Simulate SimulateCmd `cmd:"" help:"Print the simulated beacon value for a height"`
	Plan     PlanCmd     `cmd:"" help:"Run or verify a draw plan"`
	Check    CheckCmd    `cmd:"" help:"Check the distribution of the range sampler"`
	Serve    ServeCmd    `cmd:"" help:"Serve draws over WebSocket"`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("fairdraw"),
		kong.Description("Verifiable draws derived from a public randomness beacon"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cli.Out = os.Stdout
	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
