package app

import (
	"github.com/spf13/cobra"
)

// Command is a sub command structure of a cli application.
type Command struct {
	usage    string
	desc     string
	options  CliOptions
	commands []*Command
	runFunc  RunCommandFunc
}

// RunCommandFunc defines the sub command startup callback; args are the
// positional arguments left after flag parsing.
type RunCommandFunc func(args []string) error

type CommandOption func(*Command)

func NewCommand(usage string, desc string, opts ...CommandOption) *Command {
	c := &Command{
		usage: usage,
		desc:  desc,
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

func (c *Command) AddCommand(cmd *Command) {
	c.commands = append(c.commands, cmd)
}

func (c *Command) AddCommands(cmds ...*Command) {
	c.commands = append(c.commands, cmds...)
}

func (c *Command) cobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.usage,
		Short: c.desc,
	}
	cmd.Flags().SortFlags = false
	for _, command := range c.commands {
		cmd.AddCommand(command.cobraCommand())
	}
	if c.runFunc != nil {
		cmd.RunE = func(_ *cobra.Command, args []string) error {
			if c.options != nil {
				if errs := c.options.Validate(); len(errs) > 0 {
					return errs[0]
				}
			}
			return c.runFunc(args)
		}
	}
	if c.options != nil {
		c.options.AddFlags(cmd.Flags())
	}
	return cmd
}

// WithCommandOptions to open the application's function to read from the
// command line.
func WithCommandOptions(opt CliOptions) CommandOption {
	return func(c *Command) {
		c.options = opt
	}
}

// WithCommandRunFunc is used to set the application's command startup callback
// function option.
func WithCommandRunFunc(run RunCommandFunc) CommandOption {
	return func(c *Command) {
		c.runFunc = run
	}
}
