package app

import (
	"os"

	"github.com/Hakuto4838/TwoDList.git/app"
)

const commandDesc = `Compare list heights on the same key distribution.

Each height gets its own list built from the same keys, and the weighted
number of descent steps is reported for each.`

func New(basename string) *app.App {
	opts := NewOptions()
	return app.NewApp(
		basename,
		app.WithOptions(opts),
		app.WithConfiguration(opts),
		app.WithDescription(commandDesc),
		app.WithSilence(),
		app.WithRunFunc(func(basename string) error {
			_, err := Compare(os.Stdout, opts)
			return err
		}),
	)
}
