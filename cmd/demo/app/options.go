package app

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Options struct {
	MaxLevels      int   `mapstructure:"max-levels"`
	Count          int   `mapstructure:"count"`
	ContainsLevels int   `mapstructure:"contains-levels"`
	ContainsCount  int   `mapstructure:"contains-count"`
	Searches       int   `mapstructure:"searches"`
	Lo             int   `mapstructure:"lo"`
	Hi             int   `mapstructure:"hi"`
	Seed           int64 `mapstructure:"seed"`
	CoinSeed       int64 `mapstructure:"coin-seed"`
	Linear         bool  `mapstructure:"linear"`
	Table          bool  `mapstructure:"table"`
}

func NewOptions() *Options {
	return &Options{
		MaxLevels:      3,
		Count:          20,
		ContainsLevels: 19,
		ContainsCount:  100,
		Searches:       10,
		Lo:             1,
		Hi:             100,
		Seed:           1,
		CoinSeed:       1,
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxLevels, "max-levels", o.MaxLevels,
		"Number of levels for the insert/erase scenarios")
	fs.IntVar(&o.Count, "count", o.Count,
		"Random keys inserted by the insert scenario")
	fs.IntVar(&o.ContainsLevels, "contains-levels", o.ContainsLevels,
		"Number of levels for the contains scenario")
	fs.IntVar(&o.ContainsCount, "contains-count", o.ContainsCount,
		"Random keys inserted before searching in the contains scenario")
	fs.IntVar(&o.Searches, "searches", o.Searches,
		"Random lookups performed by the contains scenario")
	fs.IntVar(&o.Lo, "lo", o.Lo, "Smallest random key")
	fs.IntVar(&o.Hi, "hi", o.Hi, "Largest random key")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "Seed of the key generator")
	fs.Int64Var(&o.CoinSeed, "coin-seed", o.CoinSeed, "Seed of the promotion coin")
	fs.BoolVar(&o.Linear, "linear", o.Linear, "Scan every level from its head instead of descending")
	fs.BoolVar(&o.Table, "table", o.Table, "Also render each list as a table")
}

// Validate will check the requirements of options
func (o *Options) Validate() []error {
	var errs []error
	if o.MaxLevels <= 0 {
		errs = append(errs, fmt.Errorf("--max-levels must be positive, got %d", o.MaxLevels))
	}
	if o.ContainsLevels <= 0 {
		errs = append(errs, fmt.Errorf("--contains-levels must be positive, got %d", o.ContainsLevels))
	}
	if o.Lo > o.Hi {
		errs = append(errs, fmt.Errorf("--lo (%d) must not exceed --hi (%d)", o.Lo, o.Hi))
	}
	for name, v := range map[string]int{"count": o.Count, "contains-count": o.ContainsCount, "searches": o.Searches} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("--%s must not be negative, got %d", name, v))
		}
	}
	return errs
}
