package transfer

import (
	"errors"
	"fmt"
	"math"

	"github.com/RMahshie/basscalc/internal/equations"
	"gonum.org/v1/gonum/floats"
)

// MaxPoints caps the number of samples in one sweep
const MaxPoints = 100000

var ErrInvalidSweep = errors.New("invalid sweep")

// Sweep describes the frequencies a curve is sampled at, in hertz.
// A linear sweep steps from Min to Max by Step; a logarithmic sweep takes
// Points samples evenly spaced in log frequency.
type Sweep struct {
	Min    float64
	Max    float64
	Step   float64
	Log    bool
	Points int
}

// DefaultSweep covers the bass range in 1 Hz steps
func DefaultSweep() Sweep {
	return Sweep{Min: 20, Max: 200, Step: 1}
}

// Validate checks the bounds and the number of samples
func (s Sweep) Validate() error {
	if !isFinite(s.Min) || !isFinite(s.Max) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidSweep)
	}
	if s.Min <= 0 || s.Max < s.Min {
		return fmt.Errorf("%w: need 0 < min <= max, got %g..%g", ErrInvalidSweep, s.Min, s.Max)
	}
	if s.Log {
		if s.Points < 2 || s.Points > MaxPoints {
			return fmt.Errorf("%w: points must be in [2, %d], got %d", ErrInvalidSweep, MaxPoints, s.Points)
		}
		return nil
	}
	if !isFinite(s.Step) || s.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidSweep, s.Step)
	}
	if n := (s.Max - s.Min) / s.Step; n+1 > MaxPoints {
		return fmt.Errorf("%w: %.0f points exceeds %d", ErrInvalidSweep, n+1, MaxPoints)
	}
	return nil
}

// Frequencies lists the sample frequencies in hertz
func (s Sweep) Frequencies() []float64 {
	if s.Log {
		return floats.LogSpan(make([]float64, s.Points), s.Min, s.Max)
	}
	n := int(math.Floor((s.Max-s.Min)/s.Step+1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Min + float64(i)*s.Step
	}
	return out
}

// Point is one sample of a response curve
type Point struct {
	Frequency float64
	Magnitude float64
	Valid     bool
}

// Level returns the magnitude in decibels
func (p Point) Level() float64 {
	return 20 * math.Log10(p.Magnitude)
}

// Sample evaluates data at every frequency of the sweep. Samples are
// independent; non-finite ones are kept and marked invalid so the caller
// can draw a gap.
func Sample(data BassFnData, sweep Sweep) []Point {
	freqs := sweep.Frequencies()
	out := make([]Point, len(freqs))
	for i, f := range freqs {
		m := Evaluate(data, equations.TwoPi*f)
		out[i] = Point{Frequency: f, Magnitude: m, Valid: isFinite(m)}
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
