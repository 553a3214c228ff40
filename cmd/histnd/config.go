package main

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"histnd.lopezb.com/internal/histogram"
)

// Dimension kinds accepted in the configuration.
const (
	kindInt   = "int"
	kindUint  = "uint"
	kindFloat = "float"
)

var errNoDimensions = errors.New("at least one dimension is required")

type dimensionConfig struct {
	Kind    string  `mapstructure:"kind"`
	Min     float64 `mapstructure:"min"`
	Max     float64 `mapstructure:"max"`
	Buckets uint32  `mapstructure:"buckets"`
}

type config struct {
	Input      string            `mapstructure:"input"`
	Workers    int               `mapstructure:"workers"`
	Normalize  bool              `mapstructure:"normalize"`
	Verbose    bool              `mapstructure:"verbose"`
	Weighted   bool              `mapstructure:"weighted"`
	Dimensions []dimensionConfig `mapstructure:"dimensions"`
}

// loadConfig merges, from lowest to highest priority: defaults, the YAML
// file named by --config, HISTND_* environment variables and flags.
// Dimensions given with --dim replace those from the file.
func loadConfig(args []string) (config, error) {
	fs := pflag.NewFlagSet("histnd", pflag.ContinueOnError)
	fs.String("config", "", "Path to a YAML configuration file")
	fs.String("input", "-", "CSV file with one sample per row (- for stdin)")
	fs.Int("workers", runtime.GOMAXPROCS(0), "Number of partitions accumulated in parallel")
	fs.Bool("normalize", false, "Normalize bins so their absolute values sum to 1")
	fs.BoolP("verbose", "v", false, "Print every non-zero bin")
	fs.Bool("weighted", false, "Read the last CSV column as the sample weight")
	dims := fs.StringArray("dim", nil, "Dimension as kind:min:max:buckets, kind is int, uint or float (repeatable)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetDefault("input", "-")
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetEnvPrefix("HISTND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return config{}, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}

	if len(*dims) > 0 {
		cfg.Dimensions = make([]dimensionConfig, 0, len(*dims))
		for _, s := range *dims {
			d, err := parseDimension(s)
			if err != nil {
				return config{}, err
			}
			cfg.Dimensions = append(cfg.Dimensions, d)
		}
	}

	if len(cfg.Dimensions) == 0 {
		return config{}, errNoDimensions
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg, nil
}

// parseDimension parses "kind:min:max:buckets".
func parseDimension(s string) (dimensionConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return dimensionConfig{}, fmt.Errorf("dimension %q: want kind:min:max:buckets", s)
	}

	lo, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return dimensionConfig{}, fmt.Errorf("dimension %q: min: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return dimensionConfig{}, fmt.Errorf("dimension %q: max: %w", s, err)
	}
	buckets, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return dimensionConfig{}, fmt.Errorf("dimension %q: buckets: %w", s, err)
	}

	return dimensionConfig{
		Kind:    strings.ToLower(parts[0]),
		Min:     lo,
		Max:     hi,
		Buckets: uint32(buckets),
	}, nil
}

// axis builds the histogram dimension described by d.
func (d dimensionConfig) axis() (histogram.Axis, error) {
	var (
		a   histogram.Axis
		err error
	)

	switch d.Kind {
	case kindInt:
		if d.Min != math.Trunc(d.Min) || d.Max != math.Trunc(d.Max) {
			return nil, fmt.Errorf("%w: int bounds must be whole numbers", histogram.ErrInvalidConfig)
		}
		a, err = histogram.NewDimension(int64(d.Min), int64(d.Max), d.Buckets)
	case kindUint:
		if d.Min < 0 || d.Min != math.Trunc(d.Min) || d.Max != math.Trunc(d.Max) {
			return nil, fmt.Errorf("%w: uint bounds must be non-negative whole numbers", histogram.ErrInvalidConfig)
		}
		a, err = histogram.NewDimension(uint64(d.Min), uint64(d.Max), d.Buckets)
	case kindFloat:
		a, err = histogram.NewDimension(d.Min, d.Max, d.Buckets)
	default:
		return nil, fmt.Errorf("%w: unknown dimension kind %q", histogram.ErrInvalidConfig, d.Kind)
	}

	if err != nil {
		return nil, err
	}
	return a, nil
}

// parse converts one CSV field into a sample value of the dimension's kind.
func (d dimensionConfig) parse(field string) (any, error) {
	switch d.Kind {
	case kindInt:
		return strconv.ParseInt(field, 10, 64)
	case kindUint:
		return strconv.ParseUint(field, 10, 64)
	default:
		return strconv.ParseFloat(field, 64)
	}
}
