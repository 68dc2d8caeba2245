// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"strings"
)

// Family is the closed set of matrix-valued kernels.
type Family int

const (
	// RBF is σ²·exp(−r²/2ℓ)·B.
	RBF Family = iota
	// DotProduct is (x·y)·B.
	DotProduct
	// DivFree is the divergence-free kernel; D must equal d.
	DivFree
	// CurlFree is the curl-free kernel; D must equal d.
	CurlFree
)

var familyNames = [...]string{
	RBF:        "rbf",
	DotProduct: "dot_product",
	DivFree:    "div_free",
	CurlFree:   "curl_free",
}

// String returns the canonical snake_case name.
func (f Family) String() string {
	if f < RBF || f > CurlFree {
		return fmt.Sprintf("Family(%d)", int(f))
	}

	return familyNames[f]
}

// Valid reports whether f is one of the four families.
func (f Family) Valid() bool { return f >= RBF && f <= CurlFree }

// Structural reports whether the family ties output dimension to input dimension.
func (f Family) Structural() bool { return f == DivFree || f == CurlFree }

// ParseFamily maps a name to a Family. Matching ignores case and accepts
// '-' in place of '_' ("div-free" == "div_free").
func ParseFamily(name string) (Family, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for f, n := range familyNames {
		if n == key {
			return Family(f), nil
		}
	}

	return 0, fmt.Errorf("ParseFamily(%q): %w", name, ErrUnsupportedKernel)
}

// MarshalText implements encoding.TextMarshaler (TOML and flags use the name).
func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedKernel)
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Family) UnmarshalText(text []byte) error {
	v, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = v

	return nil
}
