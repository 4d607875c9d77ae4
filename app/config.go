package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlagName = "config"

// addConfigFlag adds the config file flag and wires environment variables
// prefixed with the upper-cased basename into v.
func addConfigFlag(basename string, v *viper.Viper, fs *pflag.FlagSet) {
	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(basename), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	fs.StringP(configFlagName, "C", "",
		"Read configuration from specified `FILE`, support JSON, TOML, YAML, HCL, or Java properties formats.")
}

// loadConfig binds the option flags into v, reads the config file when one
// was given and unmarshals the merged result into conf.
func loadConfig(v *viper.Viper, cmdFlags, optFlags *pflag.FlagSet, conf interface{}) error {
	if optFlags != nil {
		if err := v.BindPFlags(optFlags); err != nil {
			return err
		}
	}
	if f := cmdFlags.Lookup(configFlagName); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file(%s): %w", f.Value.String(), err)
		}
	}
	return v.Unmarshal(conf)
}

func printConfig(w io.Writer, v *viper.Viper) {
	keys := v.AllKeys()
	sort.Strings(keys)
	if len(keys) > 0 {
		fmt.Fprintf(w, "%v Configuration items:\n", color.GreenString("==>"))
		table := uitable.New()
		table.Separator = " "
		table.MaxColWidth = 80
		table.RightAlign(0)
		for _, k := range keys {
			table.AddRow(fmt.Sprintf("%s:", k), v.Get(k))
		}
		fmt.Fprintln(w, table)
	}
}
