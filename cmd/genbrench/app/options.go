package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

type Options struct {
	N           string  `mapstructure:"n"`
	K           string  `mapstructure:"k"`
	A           float64 `mapstructure:"a"`
	B           float64 `mapstructure:"b"`
	Seed        int64   `mapstructure:"seed"`
	DeleteRatio float64 `mapstructure:"delete-ratio"`
	Nums        int     `mapstructure:"nums"`
	Out         string  `mapstructure:"out"`
	Path        string  `mapstructure:"path"`
}

func NewOptions() *Options {
	return &Options{
		N:           "1e3",
		K:           "1e4",
		A:           1.07,
		Seed:        time.Now().UnixNano(),
		DeleteRatio: 0.1,
		Nums:        1,
		Path:        ".",
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.N, "n", o.N, "number of distinct keys (支援科學記號，如 1e5)")
	fs.StringVar(&o.K, "k", o.K, "number of operations to generate (支援科學記號，如 1e6)")
	fs.Float64Var(&o.A, "a", o.A, "Zipf parameter a (設為 0 時使用均勻分布)")
	fs.Float64Var(&o.B, "b", o.B, "Zipf parameter b (當 a > 0 時有效)")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "seed for the key generator and the operation mix")
	fs.Float64Var(&o.DeleteRatio, "delete-ratio", o.DeleteRatio, "ratio of delete operations on present keys")
	fs.IntVar(&o.Nums, "nums", o.Nums, "number of files to generate")
	fs.StringVar(&o.Out, "out", o.Out, "output filename prefix (留空則自動生成)")
	fs.StringVar(&o.Path, "path", o.Path, "output directory path (輸出目錄路徑)")
}

func (o *Options) Validate() []error {
	var errs []error
	n, err := parseScientificNotation(o.N)
	if err != nil {
		errs = append(errs, fmt.Errorf("--n: %w", err))
	} else if n <= 0 {
		errs = append(errs, fmt.Errorf("--n must be positive, got %d", n))
	}
	k, err := parseScientificNotation(o.K)
	if err != nil {
		errs = append(errs, fmt.Errorf("--k: %w", err))
	} else if k < 0 {
		errs = append(errs, fmt.Errorf("--k must not be negative, got %d", k))
	}
	if o.A < 0 {
		errs = append(errs, fmt.Errorf("--a must not be negative, got %v", o.A))
	}
	if o.DeleteRatio < 0 || o.DeleteRatio > 1 {
		errs = append(errs, fmt.Errorf("--delete-ratio must be between 0 and 1, got %v", o.DeleteRatio))
	}
	if o.Nums <= 0 {
		errs = append(errs, fmt.Errorf("--nums must be positive, got %d", o.Nums))
	}
	return errs
}

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
