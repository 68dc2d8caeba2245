// SPDX-License-Identifier: MIT

// Package kernel: functional configuration for kernel evaluation.
// This file defines:
//   - Config (the explicit hyperparameter value every entry point receives),
//   - documented defaults (constants),
//   - WithX option constructors,
//   - New, which applies options and validates once.
//
// Design goals:
//   - Deterministic behavior: no global state; precision is a field, not ambient.
//   - No dead switches: each field impacts evaluation and is covered by tests.
//   - Validation returns ErrInvalidConfig instead of panicking.
package kernel

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vecgp/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultLengthScale is ℓ. Note that ℓ divides r² directly: exp(−r²/2ℓ).
	DefaultLengthScale = 1.0

	// DefaultSigmaVar is σ², the signal variance of rbf. Ignored by div-free/curl-free.
	DefaultSigmaVar = 1.0

	// DefaultNormalizerJitter is added to each per-target D×D block sum before the
	// smoother inverts it. Zero means no regularization.
	DefaultNormalizerJitter = 0.0

	// DefaultPrecision keeps results in float64.
	DefaultPrecision = matrix.Float64
)

// Config holds kernel hyperparameters.
//
// B is the D×D output coupling matrix; nil means identity of the natural size
// (I_d in Evaluate, I_D with D the label dimension in the gp package).
type Config struct {
	Family           Family
	LengthScale      float64
	SigmaVar         float64
	B                *matrix.Dense
	NormalizerJitter float64
	Precision        matrix.Precision
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithLengthScale sets ℓ (must be > 0).
func WithLengthScale(l float64) Option { return func(c *Config) { c.LengthScale = l } }

// WithSigmaVar sets σ² (must be ≥ 0).
func WithSigmaVar(s float64) Option { return func(c *Config) { c.SigmaVar = s } }

// WithCoupling sets the output coupling matrix B. The matrix is cloned.
func WithCoupling(b *matrix.Dense) Option {
	return func(c *Config) {
		if b == nil {
			c.B = nil
			return
		}
		c.B = b.Clone().(*matrix.Dense)
	}
}

// WithNormalizerJitter sets the smoother normalizer regularization (must be ≥ 0).
func WithNormalizerJitter(j float64) Option {
	return func(c *Config) { c.NormalizerJitter = j }
}

// WithPrecision sets the reported precision.
func WithPrecision(p matrix.Precision) Option { return func(c *Config) { c.Precision = p } }

// Default returns the defaults for family f without validation.
func Default(f Family) Config {
	return Config{
		Family:           f,
		LengthScale:      DefaultLengthScale,
		SigmaVar:         DefaultSigmaVar,
		NormalizerJitter: DefaultNormalizerJitter,
		Precision:        DefaultPrecision,
	}
}

// New builds and validates a Config.
func New(f Family, opts ...Option) (Config, error) {
	c := Default(f)
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every field against its domain.
//
// Errors:
//   - ErrUnsupportedKernel for an unknown family.
//   - ErrInvalidConfig for ℓ ≤ 0, σ² < 0, NormalizerJitter < 0, or non-finite values.
//   - matrix.ErrNonSquare for a non-square B.
//   - matrix.ErrUnknownPrecision for an unknown precision.
func (c Config) Validate() error {
	if !c.Family.Valid() {
		return fmt.Errorf("Config.Validate: %s: %w", c.Family, ErrUnsupportedKernel)
	}
	if !(c.LengthScale > 0) || math.IsInf(c.LengthScale, 0) {
		return fmt.Errorf("Config.Validate: length scale %g: %w", c.LengthScale, ErrInvalidConfig)
	}
	if !(c.SigmaVar >= 0) || math.IsInf(c.SigmaVar, 0) {
		return fmt.Errorf("Config.Validate: sigma var %g: %w", c.SigmaVar, ErrInvalidConfig)
	}
	if !(c.NormalizerJitter >= 0) || math.IsInf(c.NormalizerJitter, 0) {
		return fmt.Errorf("Config.Validate: normalizer jitter %g: %w", c.NormalizerJitter, ErrInvalidConfig)
	}
	if c.B != nil {
		if err := matrix.ValidateSquare(c.B); err != nil {
			return fmt.Errorf("Config.Validate: B: %w", err)
		}
	}
	if err := c.Precision.Validate(); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}

	return nil
}

// OutputDim returns D for inputs of dimension d: the size of B, or d when B is nil.
func (c Config) OutputDim(d int) int {
	if c.B == nil {
		return d
	}

	return c.B.Rows()
}

// WithDefaultCoupling returns a copy of c whose nil B is replaced by I_D.
// Callers with labels (smoother, inference) use it to tie D to the label dimension.
func (c Config) WithDefaultCoupling(dim int) (Config, error) {
	if c.B != nil {
		return c, nil
	}
	id, err := matrix.NewIdentity(dim)
	if err != nil {
		return c, fmt.Errorf("WithDefaultCoupling(%d): %w", dim, err)
	}
	c.B = id

	return c, nil
}
