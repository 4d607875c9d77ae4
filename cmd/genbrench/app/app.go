package app

import (
	"os"

	"github.com/Hakuto4838/TwoDList.git/app"
)

const commandDesc = `Generate TDLBENCH operation streams for benchrun.

Keys come from a Zipf distribution, or a uniform one when --a is 0.`

func New(basename string) *app.App {
	opts := NewOptions()
	return app.NewApp(
		basename,
		app.WithOptions(opts),
		app.WithConfiguration(opts),
		app.WithDescription(commandDesc),
		app.WithRunFunc(func(basename string) error {
			_, err := Generate(opts, os.Stdout)
			return err
		}),
	)
}
