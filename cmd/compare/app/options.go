package app

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Options struct {
	N         int     `mapstructure:"n"`
	A         float64 `mapstructure:"a"`
	B         float64 `mapstructure:"b"`
	Seed      int64   `mapstructure:"seed"`
	MinLevels int     `mapstructure:"min-levels"`
	MaxLevels int     `mapstructure:"max-levels"`
	Training  int     `mapstructure:"training"`
	Show      int     `mapstructure:"show"`
}

func NewOptions() *Options {
	return &Options{
		N:         900,
		A:         1.07,
		B:         1.0,
		Seed:      42,
		MinLevels: 1,
		MaxLevels: 12,
		Training:  10,
		Show:      0,
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.N, "n", o.N, "number of distinct keys")
	fs.Float64Var(&o.A, "a", o.A, "Zipf parameter a (設為 0 時使用均勻分布)")
	fs.Float64Var(&o.B, "b", o.B, "Zipf parameter b")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "seed for the key generator and the promotion coin")
	fs.IntVar(&o.MinLevels, "min-levels", o.MinLevels, "smallest list height to compare")
	fs.IntVar(&o.MaxLevels, "max-levels", o.MaxLevels, "largest list height to compare")
	fs.IntVar(&o.Training, "training", o.Training, "queries per key replayed after building, as a multiple of n")
	fs.IntVar(&o.Show, "show", o.Show, "print the list of this height as a table (0 to skip)")
}

func (o *Options) Validate() []error {
	var errs []error
	if o.N <= 0 {
		errs = append(errs, fmt.Errorf("--n must be positive, got %d", o.N))
	}
	if o.A < 0 {
		errs = append(errs, fmt.Errorf("--a must not be negative, got %v", o.A))
	}
	if o.MinLevels <= 0 || o.MinLevels > o.MaxLevels {
		errs = append(errs, fmt.Errorf("need 0 < --min-levels (%d) <= --max-levels (%d)", o.MinLevels, o.MaxLevels))
	}
	if o.Training < 0 {
		errs = append(errs, fmt.Errorf("--training must not be negative, got %d", o.Training))
	}
	return errs
}
