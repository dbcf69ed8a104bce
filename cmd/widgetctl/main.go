package main

import (
	"context"

	"github.com/alecthomas/kong"
)

type cli struct {
	Render   renderCmd   `cmd:"" help:"Render the bestseller widget from a SQLite catalog."`
	Seed     seedCmd     `cmd:"" help:"Load catalog products and sales from a YAML fixture into SQLite."`
	Scaffold scaffoldCmd `cmd:"" help:"Scaffold a widget definition, provider stub, and manifest entry."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Storefront bestseller widget utility."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
