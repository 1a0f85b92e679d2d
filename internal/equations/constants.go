package equations

import "math"

// TwoPi converts between hertz and radians per second
const TwoPi = 2 * math.Pi

// Unit conversion factors folded into the relations. Inputs and outputs
// are in the display units declared on each parameter.
const (
	// cm² · mm → L
	litresPerSquareCmMm = 1e-4
	// cm² → m²
	squareMPerSquareCm = 1e-4
	// kg → g
	gramsPerKg = 1000.0
	// cm⁴ per m⁴, for areas squared
	cm4PerM4 = 1e8
	// m³ → L
	litresPerCubicM = 1000.0
	// g/cm⁴ → kg/m⁴
	driverMassScale = 1e5
	// kg/cm⁴ → kg/m⁴
	radiatorMassScale = 1e8
)

// LeakageRatio is the box loss time constant relative to the driver time
// constant, τL/Ts. It is a model constant, not an input; 0.2 is a
// reasonable guess for a lined box.
const LeakageRatio = 0.2
