package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

var (
	progressMessage = color.GreenString("==>")
	usageTemplate   = fmt.Sprintf(`%s{{if .Runnable}}
  %s{{end}}{{if .HasAvailableSubCommands}}
  %s{{end}}{{if gt (len .Aliases) 0}}

%s
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

%s
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

%s{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  %s {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

%s
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

%s
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`,
		color.CyanString("Usage:"),
		color.GreenString("{{.UseLine}}"),
		color.GreenString("{{.CommandPath}} [command]"),
		color.CyanString("Aliases:"),
		color.CyanString("Examples:"),
		color.CyanString("Available Commands:"),
		color.GreenString("{{rpad .Name .NamePadding }}"),
		color.CyanString("Flags:"),
		color.CyanString("Global Flags:"),
	)

	klogOnce sync.Once
)

// ErrInvalidOptions is returned when option validation fails; the individual
// problems are printed before it is returned.
var ErrInvalidOptions = errors.New("invalid options")

// App is the main structure of a cli application.
// It is recommended that an app be created with the app.NewApp() function.
type App struct {
	name         string
	description  string
	options      CliOptions
	runFunc      RunFunc
	silence      bool
	commands     []*Command
	configurable interface{}
	viper        *viper.Viper
	out          io.Writer
}

// Option defines optional parameters for initializing the application
// structure.
type Option func(*App)

// WithOptions to open the application's function to read from the command line
// or read parameters from the configuration file.
func WithOptions(opt CliOptions) Option {
	return func(a *App) {
		a.options = opt
	}
}

// RunFunc defines the application's startup callback function.
type RunFunc func(basename string) error

// WithRunFunc is used to set the application startup callback function option.
func WithRunFunc(run RunFunc) Option {
	return func(a *App) {
		a.runFunc = run
	}
}

// WithDescription is used to set the description of the application.
func WithDescription(desc string) Option {
	return func(a *App) {
		a.description = desc
	}
}

// WithSilence sets the application to silent mode, in which the program startup
// information and configuration information are not printed in the console.
func WithSilence() Option {
	return func(a *App) {
		a.silence = true
	}
}

// WithConfiguration enables the --config flag; the merged flags, config file
// and environment are unmarshalled into conf before running.
func WithConfiguration(conf interface{}) Option {
	return func(a *App) {
		a.configurable = conf
	}
}

// WithOutput redirects the progress and configuration messages.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}

// NewApp creates a new application instance based on the given application name,
// binary name, and other options.
func NewApp(name string, opts ...Option) *App {
	a := &App{
		name:  name,
		viper: viper.New(),
		out:   os.Stdout,
	}

	for _, o := range opts {
		o(a)
	}

	return a
}

// AddCommand adds sub command to the application.
func (a *App) AddCommand(cmd *Command) {
	a.commands = append(a.commands, cmd)
}

// AddCommands adds multiple sub commands to the application.
func (a *App) AddCommands(cmds ...*Command) {
	a.commands = append(a.commands, cmds...)
}

// Run is used to launch the application.
func (a *App) Run() {
	klogOnce.Do(func() { klog.InitFlags(nil) })
	defer klog.Flush()

	cmd := a.Command()
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := cmd.Execute(); err != nil {
		fmt.Printf("%v %v\n", color.RedString("Error:"), err)
		klog.Flush()
		os.Exit(1)
	}
}

// Command builds the cobra command tree without executing it.
func (a *App) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           FormatBaseName(a.name),
		Long:          a.description,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(a.out)
	cmd.SetUsageTemplate(usageTemplate)
	cmd.Flags().SortFlags = false

	var optFlags *pflag.FlagSet
	if a.options != nil {
		optFlags = pflag.NewFlagSet(a.name, pflag.ContinueOnError)
		optFlags.SortFlags = false
		a.options.AddFlags(optFlags)
		cmd.PersistentFlags().AddFlagSet(optFlags)
	}
	if a.configurable != nil {
		addConfigFlag(a.name, a.viper, cmd.PersistentFlags())
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		return a.prepare(c, optFlags)
	}
	for _, command := range a.commands {
		cmd.AddCommand(command.cobraCommand())
	}
	if a.runFunc != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			return a.runFunc(a.name)
		}
	}
	return cmd
}

func (a *App) prepare(cmd *cobra.Command, optFlags *pflag.FlagSet) error {
	if !a.silence {
		fmt.Fprintf(a.out, "%v Starting %s...\n", progressMessage, a.name)
		wd, _ := os.Getwd()
		fmt.Fprintf(a.out, "%v WorkingDir: %s\n", progressMessage, wd)
		fmt.Fprintf(a.out, "%v Args: %v\n", progressMessage, os.Args)
	}

	if a.configurable != nil {
		if err := loadConfig(a.viper, cmd.Flags(), optFlags, a.configurable); err != nil {
			return err
		}
		if !a.silence {
			printConfig(a.out, a.viper)
		}
	}

	if a.options != nil {
		if errs := a.options.Validate(); len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintf(a.out, "%v %v\n", color.RedString("Error:"), err)
			}
			return fmt.Errorf("%w: %d problem(s)", ErrInvalidOptions, len(errs))
		}
	}
	klog.V(2).Infof("%s options ready", a.name)
	return nil
}

// FormatBaseName is formatted as an executable file name under different
// operating systems according to the given name.
func FormatBaseName(basename string) string {
	basename = filepath.Base(basename)
	if runtime.GOOS == "windows" {
		basename = strings.TrimSuffix(strings.ToLower(basename), ".exe")
	}
	return basename
}
