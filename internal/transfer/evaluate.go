package transfer

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrSingularDenominator is returned when the denominator vanishes at the
// requested frequency.
var ErrSingularDenominator = errors.New("singular denominator")

// polyAt evaluates coeffs (highest order first) at s with Horner's scheme
func polyAt(coeffs []float64, s complex128) complex128 {
	var acc complex128
	for _, c := range coeffs {
		acc = acc*s + complex(c, 0)
	}
	return acc
}

// Response returns N(jω)/D(jω)
func Response(data BassFnData, omega float64) (complex128, error) {
	s := complex(0, omega)
	den := polyAt(data.Denominator, s)
	if den == 0 {
		return cmplx.NaN(), ErrSingularDenominator
	}
	return polyAt(data.Numerator, s) / den, nil
}

// EvaluateChecked returns |N(jω)/D(jω)| or ErrSingularDenominator
func EvaluateChecked(data BassFnData, omega float64) (float64, error) {
	h, err := Response(data, omega)
	if err != nil {
		return math.NaN(), err
	}
	return cmplx.Abs(h), nil
}

// Evaluate returns the magnitude of the transfer function at angular
// frequency omega. A singular denominator yields NaN so a sweep can carry on.
func Evaluate(data BassFnData, omega float64) float64 {
	m, _ := EvaluateChecked(data, omega)
	return m
}
