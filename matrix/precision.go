// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// Precision selects the numeric width results are reported in.
// Computation always runs in float64; Float32 rounds the final values.
type Precision int

const (
	// Float64 keeps full double precision (default).
	Float64 Precision = iota
	// Float32 rounds each reported value to the nearest float32.
	Float32
)

// String implements fmt.Stringer.
func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Validate reports ErrUnknownPrecision for values outside the enum.
func (p Precision) Validate() error {
	if p != Float64 && p != Float32 {
		return fmt.Errorf("%s: %w", p, ErrUnknownPrecision)
	}

	return nil
}

// ParsePrecision maps "float64"/"f64"/"" and "float32"/"f32" to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "float64", "f64", "double":
		return Float64, nil
	case "float32", "f32", "single":
		return Float32, nil
	default:
		return Float64, fmt.Errorf("ParsePrecision(%q): %w", s, ErrUnknownPrecision)
	}
}

// RoundValue rounds v to the requested precision.
func (p Precision) RoundValue(v float64) float64 {
	if p == Float32 {
		return float64(float32(v))
	}

	return v
}

// Round applies the precision to every element of m in place.
// Float64 is a no-op.
func (p Precision) Round(m *Dense) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p == Float64 || m == nil {
		return nil
	}

	return m.Apply(func(_, _ int, v float64) float64 { return p.RoundValue(v) })
}

// RoundSlice applies the precision to every element of xs in place.
func (p Precision) RoundSlice(xs []float64) {
	if p != Float32 {
		return
	}
	for i, v := range xs {
		xs[i] = p.RoundValue(v)
	}
}
