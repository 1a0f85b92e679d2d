// Package model wires the default loudspeaker, passive radiator and
// enclosure parameters into a dependency graph.
package model

import (
	"github.com/RMahshie/basscalc/internal/equations"
	"github.com/RMahshie/basscalc/internal/params"
)

type entry struct {
	name      string
	unit      string
	value     float64
	min, max  float64
	precision int
	group     params.Group
	rule      params.Rule
}

func leaf(name, unit string, value, min, max float64, precision int, group params.Group) entry {
	return entry{name, unit, value, min, max, precision, group, nil}
}

func derived(name, unit string, value, min, max float64, precision int, group params.Group, eq equations.Equation) entry {
	return entry{name, unit, value, min, max, precision, group, eq}
}

// defaults lists every parameter in display order. Values are the
// hard-coded starting points and are not consistent with the relations
// until a recompute pass runs.
var defaults = []entry{
	// Driver
	leaf(equations.Xmax, "mm", 3.0, 0.0, 100.0, 1, params.Driver),
	derived(equations.Vd, "L", 0.1, 0.1, 100.0, 1, params.Driver, equations.DisplacedVolume),
	leaf(equations.Sd, "cm^2", 10.0, 1.0, 1000.0, 1, params.Driver),
	leaf(equations.Bl, "T m", 1.0, 0.1, 20.0, 1, params.Driver),
	leaf(equations.Re, "ohm", 4.0, 0.1, 1000.0, 1, params.Driver),
	leaf(equations.Mmd, "g", 10.0, 1.0, 1000.0, 1, params.Driver),
	derived(equations.Mms, "g", 10.0, 1.0, 1000.0, 1, params.Driver, equations.MovingMass),
	derived(equations.Mas, "g / cm^4", 10.0, 1.0, 1000.0, 1, params.Driver, equations.AcousticMass),
	leaf(equations.Rms, "N s / m", 4.0, 0.0, 1000.0, 1, params.Driver),
	derived(equations.Ras, "Pa s / m^3", 1.0, 0.0, 1000.0, 1, params.Driver, equations.AcousticResistance),
	leaf(equations.Cms, "m / N", 1.0, 0.1, 1000.0, 1, params.Driver),
	derived(equations.Cas, "m^5 / N", 1.0, 0.0, 100.0, 1, params.Driver, equations.AcousticCompliance),
	derived(equations.Vas, "L", 1.0, 0.0, 100.0, 1, params.Driver, equations.EquivalentVolume),
	leaf(equations.Rg, "ohm", 0.0, 0.0, 1000.0, 1, params.Driver),
	derived(equations.Ts, "s", 0.02, 0.0002, 0.2, 4, params.Driver, equations.DriverTimeConstant),
	derived(equations.OmegaS, "rad/s", 50.0, 5.0, 5000.0, 1, params.Driver, equations.DriverAngularFrequency),
	derived(equations.Fs, "Hz", 314.1, 31.4, 31415.9, 1, params.Driver, equations.DriverResonance),
	derived(equations.Qes, "", 0.5, 0.0, 30.0, 1, params.Driver, equations.ElectricalQ),
	derived(equations.Qms, "", 0.5, 0.0, 30.0, 1, params.Driver, equations.MechanicalQ),
	derived(equations.Qts, "", 0.5, 0.0, 30.0, 1, params.Driver, equations.TotalQ),
	derived(equations.Qs, "", 0.5, 0.0, 30.0, 1, params.Driver, equations.SystemQ),
	leaf(equations.Cab, "m^5 / N", 1.0, 0.0, 100.0, 1, params.Driver),
	derived(equations.Vb, "L", 0.1, 0.0, 100.0, 1, params.Driver, equations.BoxVolume),

	// Passive radiator
	derived(equations.Vap, "L", 1.0, 0.0, 100.0, 1, params.Passive, equations.RadiatorEquivalentVolume),
	leaf(equations.Cmp, "m / N", 1.0, 0.0, 1000.0, 1, params.Passive),
	derived(equations.Cap, "m^5 / N", 1.0, 0.0, 100.0, 1, params.Passive, equations.RadiatorCompliance),
	leaf(equations.Rmp, "N s / m", 4.0, 0.0, 1000.0, 1, params.Passive),
	derived(equations.Rap, "Pa s / m^3", 1.0, 0.0, 1000.0, 1, params.Passive, equations.RadiatorResistance),
	leaf(equations.Mmp, "kg", 1.0, 0.001, 100.0, 3, params.Passive),
	derived(equations.Map, "kg / cm^4", 1.0, 0.0, 1000.0, 1, params.Passive, equations.RadiatorMass),
	leaf(equations.Sp, "cm^2", 10.0, 0.0, 1000.0, 1, params.Passive),
	derived(equations.Qmp, "", 0.5, 0.0, 30.0, 1, params.Passive, equations.RadiatorQ),
	derived(equations.OmegaP, "rad/s", 20.0, 0.0, 1000.0, 1, params.Passive, equations.RadiatorAngularFrequency),
	derived(equations.Fp, "Hz", 120.0, 0.0, 6282.0, 1, params.Passive, equations.RadiatorResonance),
	derived(equations.Tp, "s", 0.05, 0.0, 0.1, 2, params.Passive, equations.RadiatorTimeConstant),

	// Enclosure
	derived(equations.OmegaB, "rad/s", 20.0, 0.0, 1000.0, 1, params.Enclosure, equations.BoxAngularFrequency),
	derived(equations.Fb, "Hz", 120.0, 0.0, 6282.0, 1, params.Enclosure, equations.BoxResonance),
	derived(equations.Tb, "s", 0.05, 0.0, 0.1, 2, params.Enclosure, equations.BoxTimeConstant),
	derived(equations.Alpha, "", 3.0, 0.0, 100.0, 1, params.Enclosure, equations.ComplianceRatio),
	derived(equations.Delta, "", 7.0, 0.0, 100.0, 1, params.Enclosure, equations.RadiatorComplianceRatio),
	derived(equations.Y, "", 0.5, 0.0, 100.0, 1, params.Enclosure, equations.TuningRatio),
	derived(equations.H, "", 0.5, 0.0, 100.0, 1, params.Enclosure, equations.RadiatorTuningRatio),
	derived(equations.Eta0, "", 0.4, 0.0, 100.0, 1, params.Enclosure, equations.Efficiency),

	// Environment
	leaf(equations.Rho0, "kg / m^3", 1.1839, 1.0, 1.4, 4, params.Constant),
	leaf(equations.C, "m/s", 345.0, 340.0, 350.0, 1, params.Constant),
	leaf(equations.T, "s", 1.0, 0.9, 1.1, 1, params.Constant),
}

// New builds the default parameter graph. Values are the raw defaults; call
// RecomputeAll to make derived values consistent with their inputs.
func New() (*params.Graph, error) {
	b := params.NewBuilder()
	for _, e := range defaults {
		b.Add(params.Parameter{
			Name:      e.name,
			Unit:      e.unit,
			Value:     e.value,
			Min:       e.min,
			Max:       e.max,
			Precision: e.precision,
			Group:     e.group,
			Rule:      e.rule,
		})
	}
	return b.Build()
}

// MustNew is New for callers that treat a broken default topology as a
// programming error.
func MustNew() *params.Graph {
	g, err := New()
	if err != nil {
		panic(err)
	}
	return g
}

// Names lists the default parameter names in display order
func Names() []string {
	out := make([]string, len(defaults))
	for i, e := range defaults {
		out[i] = e.name
	}
	return out
}
