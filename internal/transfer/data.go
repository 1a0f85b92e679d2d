// Package transfer assembles the Hurlburt passive-radiator transfer
// functions from a parameter graph and evaluates them along the jω axis.
package transfer

import (
	"errors"
	"fmt"
	"strings"
)

// Order is the highest power of s in every assembled polynomial
const Order = 4

// BassFnData is a rational transfer function in s. Coefficients are stored
// highest order first.
type BassFnData struct {
	Numerator   []float64 `json:"numerator"`
	Denominator []float64 `json:"denominator"`
}

// Variant selects which physical response is assembled
type Variant int

const (
	// Radiator is the acoustic output of driver and radiator combined
	Radiator Variant = iota
	// Cone is the driver diaphragm displacement
	Cone
	// PassiveRadiator is the passive radiator displacement
	PassiveRadiator
	// Impedance is the voice-coil admittance normalised to the loop resistance
	Impedance
)

// ErrUnknownVariant is returned when a variant name cannot be parsed
var ErrUnknownVariant = errors.New("unknown response variant")

var variantNames = [...]string{"radiator", "cone", "passive", "impedance"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "unknown"
	}
	return variantNames[v]
}

// ParseVariant accepts the names returned by String
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Variants lists every response variant
func Variants() []Variant {
	return []Variant{Radiator, Cone, PassiveRadiator, Impedance}
}

// Normalized returns a copy scaled so the constant term of the denominator
// is 1, for comparing coefficients of equivalent formulations.
func (d BassFnData) Normalized() BassFnData {
	scale := 1.0
	if n := len(d.Denominator); n > 0 && d.Denominator[n-1] != 0 {
		scale = 1 / d.Denominator[n-1]
	}
	out := BassFnData{
		Numerator:   make([]float64, len(d.Numerator)),
		Denominator: make([]float64, len(d.Denominator)),
	}
	for i, c := range d.Numerator {
		out.Numerator[i] = c * scale
	}
	for i, c := range d.Denominator {
		out.Denominator[i] = c * scale
	}
	return out
}
