// Package equations is the catalogue of relations that derive loudspeaker
// and passive-radiator quantities from measured ones.
//
// Each relation is an Equation constant. Equation satisfies params.Rule, so
// the parameter graph dispatches every derivation the same way during a
// recompute pass. Inputs are read in their display units and the result is
// returned in the display unit of the derived parameter; conversion factors
// are baked into the formulas. Relations are total over positive finite
// inputs. Zero or negative inputs propagate Inf or NaN.
package equations

import (
	"math"

	"github.com/RMahshie/basscalc/internal/params"
)

// Equation identifies one relation
type Equation int

const (
	DisplacedVolume Equation = iota + 1
	MovingMass
	AcousticMass
	AcousticResistance
	AcousticCompliance
	EquivalentVolume
	DriverResonance
	DriverAngularFrequency
	DriverTimeConstant
	ElectricalQ
	MechanicalQ
	TotalQ
	SystemQ
	BoxVolume
	RadiatorEquivalentVolume
	RadiatorCompliance
	RadiatorResistance
	RadiatorMass
	RadiatorResonance
	RadiatorAngularFrequency
	RadiatorTimeConstant
	RadiatorQ
	BoxResonance
	BoxAngularFrequency
	BoxTimeConstant
	ComplianceRatio
	RadiatorComplianceRatio
	TuningRatio
	RadiatorTuningRatio
	Efficiency
)

type relation struct {
	name   string
	inputs []string
	eval   func(v params.Values) float64
}

var relations = map[Equation]relation{
	DisplacedVolume: {"displaced volume", []string{Sd, Xmax}, func(v params.Values) float64 {
		return litresPerSquareCmMm * v.V(Sd) * v.V(Xmax)
	}},
	MovingMass: {"moving mass", []string{Sd, Mmd, Rho0}, func(v params.Values) float64 {
		sd := squareMPerSquareCm * v.V(Sd)
		// air load on both sides of the cone, in kg
		airLoad := 2 * ((8 * v.V(Rho0)) / (3 * TwoPi * math.Sqrt(sd/math.Pi))) * sd * sd
		return v.V(Mmd) + gramsPerKg*airLoad
	}},
	AcousticMass: {"acoustic mass", []string{Sd, Mms}, func(v params.Values) float64 {
		sd := v.V(Sd)
		return v.V(Mms) / (sd * sd)
	}},
	AcousticResistance: {"acoustic resistance", []string{Sd, Rms}, func(v params.Values) float64 {
		sd := v.V(Sd)
		return cm4PerM4 * v.V(Rms) / (sd * sd)
	}},
	AcousticCompliance: {"acoustic compliance", []string{Sd, Cms}, func(v params.Values) float64 {
		sd := v.V(Sd)
		return v.V(Cms) * sd * sd / cm4PerM4
	}},
	EquivalentVolume: {"equivalent volume", []string{Cas, Rho0, C}, func(v params.Values) float64 {
		return volumeOf(v, Cas)
	}},
	DriverResonance: {"driver resonance", []string{Mas, Cas}, func(v params.Values) float64 {
		return 1 / (TwoPi * math.Sqrt(driverMassScale*v.V(Mas)*v.V(Cas)))
	}},
	DriverAngularFrequency: {"driver angular frequency", []string{Fs}, func(v params.Values) float64 {
		return TwoPi * v.V(Fs)
	}},
	DriverTimeConstant: {"driver time constant", []string{OmegaS}, func(v params.Values) float64 {
		return 1 / v.V(OmegaS)
	}},
	ElectricalQ: {"electrical Q", []string{OmegaS, Re, Mas, Sd, Bl}, func(v params.Values) float64 {
		sd, bl := v.V(Sd), v.V(Bl)
		return (v.V(OmegaS) * v.V(Re) * v.V(Mas) * sd * sd) / (gramsPerKg * bl * bl)
	}},
	MechanicalQ: {"mechanical Q", []string{OmegaS, Cas, Ras}, func(v params.Values) float64 {
		return 1 / (v.V(OmegaS) * v.V(Cas) * v.V(Ras))
	}},
	TotalQ: {"total Q", []string{Qes, Qms}, func(v params.Values) float64 {
		return parallel(v.V(Qes), v.V(Qms))
	}},
	SystemQ: {"system Q", []string{Qes, Qms, Re, Rg}, func(v params.Values) float64 {
		return parallel(SourceElectricalQ(v.V(Qes), v.V(Re), v.V(Rg)), v.V(Qms))
	}},
	BoxVolume: {"box volume", []string{Rho0, C, Cab}, func(v params.Values) float64 {
		return volumeOf(v, Cab)
	}},
	RadiatorEquivalentVolume: {"radiator equivalent volume", []string{Rho0, C, Cap}, func(v params.Values) float64 {
		return volumeOf(v, Cap)
	}},
	RadiatorCompliance: {"radiator acoustic compliance", []string{Cmp, Sp}, func(v params.Values) float64 {
		sp := v.V(Sp)
		return v.V(Cmp) * sp * sp / cm4PerM4
	}},
	RadiatorResistance: {"radiator acoustic resistance", []string{Rmp, Sp}, func(v params.Values) float64 {
		sp := v.V(Sp)
		return cm4PerM4 * v.V(Rmp) / (sp * sp)
	}},
	RadiatorMass: {"radiator acoustic mass", []string{Mmp, Sp}, func(v params.Values) float64 {
		sp := v.V(Sp)
		return v.V(Mmp) / (sp * sp)
	}},
	RadiatorResonance: {"radiator resonance", []string{Map, Cap}, func(v params.Values) float64 {
		return 1 / (TwoPi * math.Sqrt(radiatorMassScale*v.V(Map)*v.V(Cap)))
	}},
	RadiatorAngularFrequency: {"radiator angular frequency", []string{Fp}, func(v params.Values) float64 {
		return TwoPi * v.V(Fp)
	}},
	RadiatorTimeConstant: {"radiator time constant", []string{OmegaP}, func(v params.Values) float64 {
		return 1 / v.V(OmegaP)
	}},
	RadiatorQ: {"radiator mechanical Q", []string{OmegaP, Cap, Rap}, func(v params.Values) float64 {
		return 1 / (v.V(OmegaP) * v.V(Cap) * v.V(Rap))
	}},
	BoxResonance: {"box resonance", []string{Cab, Cap, Map}, func(v params.Values) float64 {
		cab := v.V(Cab)
		return math.Sqrt((1 + cab/v.V(Cap)) / (TwoPi * cab * radiatorMassScale * v.V(Map)))
	}},
	BoxAngularFrequency: {"box angular frequency", []string{Fb}, func(v params.Values) float64 {
		return TwoPi * v.V(Fb)
	}},
	BoxTimeConstant: {"box time constant", []string{OmegaB}, func(v params.Values) float64 {
		return 1 / v.V(OmegaB)
	}},
	ComplianceRatio: {"driver to box compliance ratio", []string{Cas, Cab}, func(v params.Values) float64 {
		return v.V(Cas) / v.V(Cab)
	}},
	RadiatorComplianceRatio: {"radiator to box compliance ratio", []string{Cap, Cab}, func(v params.Values) float64 {
		return v.V(Cap) / v.V(Cab)
	}},
	TuningRatio: {"box to driver tuning ratio", []string{Fb, Fs}, func(v params.Values) float64 {
		return v.V(Fb) / v.V(Fs)
	}},
	RadiatorTuningRatio: {"box to radiator tuning ratio", []string{Fb, Fp}, func(v params.Values) float64 {
		return v.V(Fb) / v.V(Fp)
	}},
	Efficiency: {"reference efficiency", []string{C, Fs, Vas, Qes}, func(v params.Values) float64 {
		c, fs := v.V(C), v.V(Fs)
		vas := v.V(Vas) / litresPerCubicM
		return ((4 * math.Pi * math.Pi) / (c * c * c)) * (fs * fs * fs * vas / v.V(Qes))
	}},
}

// String returns the human readable name of the relation
func (e Equation) String() string {
	if r, ok := relations[e]; ok {
		return r.name
	}
	return "unknown equation"
}

// Inputs lists the parameters the relation reads
func (e Equation) Inputs() []string {
	r, ok := relations[e]
	if !ok {
		return nil
	}
	out := make([]string, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Derive evaluates the relation against the current parameter values
func (e Equation) Derive(v params.Values) float64 {
	r, ok := relations[e]
	if !ok {
		return math.NaN()
	}
	return r.eval(v)
}

// All returns every equation in declaration order
func All() []Equation {
	out := make([]Equation, 0, len(relations))
	for e := DisplacedVolume; e <= Efficiency; e++ {
		out = append(out, e)
	}
	return out
}

// SourceElectricalQ scales the electrical Q of a driver for a source with
// output resistance rg.
func SourceElectricalQ(qes, re, rg float64) float64 {
	return qes * (re + rg) / re
}

// volumeOf converts an acoustic compliance into its equivalent air volume
func volumeOf(v params.Values, compliance string) float64 {
	c := v.V(C)
	return litresPerCubicM * v.V(Rho0) * c * c * v.V(compliance)
}

// parallel combines two Q factors the way resistances combine in parallel
func parallel(a, b float64) float64 {
	return (a * b) / (a + b)
}
