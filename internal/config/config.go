// SPDX-License-Identifier: MIT

// Package config decodes the TOML experiment file of the vecgp CLI.
//
// Example:
//
//	seed    = 42
//	samples = 100
//
//	[kernel]
//	family       = "div_free"
//	length-scale = 0.5
//
//	[grid]
//	min = -1.0
//	max = 1.0
//	n   = 16
//
//	[output]
//	path = "fields.parquet"
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/vecgp/gp"
	"github.com/katalvlaran/vecgp/grid"
	"github.com/katalvlaran/vecgp/internal/dataset"
	"github.com/katalvlaran/vecgp/internal/logutil"
	"github.com/katalvlaran/vecgp/kernel"
	"github.com/katalvlaran/vecgp/matrix"
)

// ErrInvalid marks every validation failure of a decoded file.
var ErrInvalid = errors.New("config: invalid")

// Kernel mirrors kernel.Config in TOML form. Coupling rows build B; empty means identity.
type Kernel struct {
	Family           string      `toml:"family"`
	LengthScale      float64     `toml:"length-scale"`
	SigmaVar         float64     `toml:"sigma-var"`
	NormalizerJitter float64     `toml:"normalizer-jitter"`
	Precision        string      `toml:"precision"`
	Coupling         [][]float64 `toml:"coupling"`
}

// Grid is the sampling grid [Min, Max]² with N points per axis.
type Grid struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
	N   int     `toml:"n"`
}

// Noise holds the observation noise and jitter variances.
type Noise struct {
	Obs    float64 `toml:"obs"`
	Jitter float64 `toml:"jitter"`
}

// Infer configures the infer command: every Stride-th grid point of a sampled
// field becomes a context point.
type Infer struct {
	Stride   int     `toml:"stride"`
	ObsNoise float64 `toml:"obs-noise"`
}

// Output is where sample writes its dataset. Format "" is inferred from the extension.
type Output struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
}

// Config is the whole experiment file.
type Config struct {
	Seed    uint64         `toml:"seed"`
	Samples int            `toml:"samples"`
	Kernel  Kernel         `toml:"kernel"`
	Grid    Grid           `toml:"grid"`
	Noise   Noise          `toml:"noise"`
	Infer   Infer          `toml:"infer"`
	Output  Output         `toml:"output"`
	Log     logutil.Config `toml:"log"`
}

// Default returns the values used for every key absent from the file.
func Default() Config {
	return Config{
		Seed:    1,
		Samples: 10,
		Kernel: Kernel{
			Family:      kernel.DivFree.String(),
			LengthScale: kernel.DefaultLengthScale,
			SigmaVar:    kernel.DefaultSigmaVar,
			Precision:   kernel.DefaultPrecision.String(),
		},
		Grid:   Grid{Min: -1, Max: 1, N: 10},
		Noise:  Noise{Obs: gp.DefaultObsNoise, Jitter: gp.DefaultJitter},
		Infer:  Infer{Stride: 3, ObsNoise: gp.DefaultInferObsNoise},
		Output: Output{Path: "fields.csv"},
		Log:    logutil.Default(),
	}
}

// Load decodes path over Default and validates the result.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown key %q: %w", undecoded[0].String(), ErrInvalid)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("config: %s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// Validate checks every section; kernel and grid errors keep their own sentinels.
func (c Config) Validate() error {
	if c.Samples < 1 {
		return invalid("samples %d < 1", c.Samples)
	}
	if _, err := c.Kernel.Build(); err != nil {
		return fmt.Errorf("config: kernel: %w", err)
	}
	if _, err := c.Grid.Build(); err != nil {
		return fmt.Errorf("config: grid: %w", err)
	}
	variances := []struct {
		key string
		v   float64
	}{{"noise.obs", c.Noise.Obs}, {"noise.jitter", c.Noise.Jitter}, {"infer.obs-noise", c.Infer.ObsNoise}}
	for _, nv := range variances {
		if !(nv.v >= 0) || math.IsInf(nv.v, 0) {
			return invalid("%s = %g", nv.key, nv.v)
		}
	}
	if c.Infer.Stride < 1 {
		return invalid("infer.stride %d < 1", c.Infer.Stride)
	}
	if c.Output.Path == "" {
		return invalid("output.path is empty")
	}
	if _, err := c.Output.ResolveFormat(); err != nil {
		return fmt.Errorf("config: output: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config: log: %w", err)
	}

	return nil
}

// Build converts the section into a validated kernel.Config.
func (k Kernel) Build() (kernel.Config, error) {
	family, err := kernel.ParseFamily(k.Family)
	if err != nil {
		return kernel.Config{}, err
	}
	prec, err := matrix.ParsePrecision(k.Precision)
	if err != nil {
		return kernel.Config{}, err
	}
	opts := []kernel.Option{
		kernel.WithLengthScale(k.LengthScale),
		kernel.WithSigmaVar(k.SigmaVar),
		kernel.WithNormalizerJitter(k.NormalizerJitter),
		kernel.WithPrecision(prec),
	}
	if len(k.Coupling) > 0 {
		b, err := matrix.NewFromRows(k.Coupling)
		if err != nil {
			return kernel.Config{}, fmt.Errorf("coupling: %w", err)
		}
		opts = append(opts, kernel.WithCoupling(b))
	}

	return kernel.New(family, opts...)
}

// Build converts the section into a grid.Grid.
func (g Grid) Build() (*grid.Grid, error) {
	return grid.New(g.Min, g.Max, g.N)
}

// ResolveFormat returns Format, or the format implied by Path's extension.
func (o Output) ResolveFormat() (dataset.Format, error) {
	if o.Format != "" {
		return dataset.ParseFormat(o.Format)
	}

	return dataset.FormatFromPath(o.Path)
}
