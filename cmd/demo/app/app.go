package app

import (
	"os"

	"github.com/Hakuto4838/TwoDList.git/app"
)

const commandDesc = `Exercise the four-way linked skip list with random and fixed key sequences.

Without a sub command every scenario runs in order.`

func New(basename string) *app.App {
	opts := NewOptions()
	application := app.NewApp(
		basename,
		app.WithOptions(opts),
		app.WithConfiguration(opts),
		app.WithDescription(commandDesc),
		app.WithSilence(),
		app.WithRunFunc(run(opts, (*Runner).All)),
	)
	application.AddCommands(
		scenario("insert", "Insert random keys and print the list after each one", opts, (*Runner).Insert),
		scenario("contains", "Search random keys in a tall list", opts, (*Runner).Contains),
		scenario("erase", "Insert 4, 7, 6, 82 and erase them step by step", opts, (*Runner).Erase),
		scenario("erase-empty", "Erase from a list without any nodes", opts, (*Runner).EraseEmpty),
		scenario("all", "Run every scenario in order", opts, (*Runner).All),
	)
	return application
}

func scenario(usage, desc string, opts *Options, fn func(*Runner) error) *app.Command {
	return app.NewCommand(usage, desc,
		app.WithCommandRunFunc(func(args []string) error {
			return run(opts, fn)(usage)
		}),
	)
}

func run(opts *Options, fn func(*Runner) error) app.RunFunc {
	return func(basename string) error {
		r, err := NewRunner(opts, os.Stdout)
		if err != nil {
			return err
		}
		return fn(r)
	}
}
