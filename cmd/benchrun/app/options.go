package app

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	modeExpress = "express"
	modeLinear  = "linear"
	modeBasic   = "basic"
)

type Options struct {
	File      string `mapstructure:"file"`
	Dir       string `mapstructure:"dir"`
	Modes     string `mapstructure:"mode"`
	Runs      int    `mapstructure:"runs"`
	MaxLevels int    `mapstructure:"max-levels"`
	Seed      int64  `mapstructure:"seed"`
}

func NewOptions() *Options {
	return &Options{
		Modes:     "all",
		Runs:      5,
		MaxLevels: 16,
		Seed:      1,
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.File, "file", o.File, "existing bench file (TDLBENCH format)")
	fs.StringVar(&o.Dir, "dir", o.Dir, "directory containing bench files to test (will test all .bin files)")
	fs.StringVar(&o.Modes, "mode", o.Modes, "search modes to run: all or comma list (express,linear,basic)")
	fs.IntVar(&o.Runs, "runs", o.Runs, "how many times to repeat each benchmark")
	fs.IntVar(&o.MaxLevels, "max-levels", o.MaxLevels, "number of levels of every list")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "seed of the promotion coin")
}

func (o *Options) Validate() []error {
	var errs []error
	if o.File == "" && o.Dir == "" {
		errs = append(errs, fmt.Errorf("either --file or --dir must be provided"))
	}
	if o.Runs <= 0 {
		errs = append(errs, fmt.Errorf("--runs must be positive, got %d", o.Runs))
	}
	if o.MaxLevels <= 0 {
		errs = append(errs, fmt.Errorf("--max-levels must be positive, got %d", o.MaxLevels))
	}
	if _, err := parseModes(o.Modes); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func parseModes(s string) ([]string, error) {
	if s == "" || s == "all" {
		return []string{modeExpress, modeLinear, modeBasic}, nil
	}
	out := make([]string, 0, 3)
	seen := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		t := strings.TrimSpace(strings.ToLower(p))
		if t == "" || seen[t] {
			continue
		}
		switch t {
		case modeExpress, modeLinear, modeBasic:
			out = append(out, t)
			seen[t] = true
		default:
			return nil, fmt.Errorf("unknown --mode: %s", t)
		}
	}
	if len(out) == 0 {
		return []string{modeExpress, modeLinear, modeBasic}, nil
	}
	return out, nil
}
