package app

import (
	"os"

	"github.com/Hakuto4838/TwoDList.git/app"
)

const commandDesc = `Replay TDLBENCH operation streams against the skip list.

Every file is replayed with the express-lane search and with the per-level
linear scan, and the timings are reported side by side.`

func New(basename string) *app.App {
	opts := NewOptions()
	return app.NewApp(
		basename,
		app.WithOptions(opts),
		app.WithConfiguration(opts),
		app.WithDescription(commandDesc),
		app.WithSilence(),
		app.WithRunFunc(func(basename string) error {
			return Run(os.Stdout, opts)
		}),
	)
}
