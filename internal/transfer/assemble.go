package transfer

import (
	"github.com/RMahshie/basscalc/internal/equations"
	"github.com/RMahshie/basscalc/internal/params"
)

// system holds the quantities every variant shares
type system struct {
	ts, tp float64 // driver and radiator time constants
	qs, qp float64 // driver total Q and radiator mechanical Q
	alpha  float64 // Cas/Cab
	delta  float64 // Cap/Cab
	tl     float64 // box loss time constant
	psi    float64 // 1 + α + δ
}

func newSystem(v params.Values) system {
	ts := v.V(equations.Ts)
	alpha, delta := v.V(equations.Alpha), v.V(equations.Delta)
	return system{
		ts:    ts,
		tp:    v.V(equations.Tp),
		qs:    v.V(equations.Qs),
		qp:    v.V(equations.Qmp),
		alpha: alpha,
		delta: delta,
		tl:    equations.LeakageRatio * ts,
		psi:   1 + alpha + delta,
	}
}

// denominator is the fourth-order characteristic polynomial of the driver,
// box and radiator with the box loss folded into the s³, s² and s terms.
func (s system) denominator() []float64 {
	ts, tp, qs, qp := s.ts, s.tp, s.qs, s.qp
	a, d, tl := s.alpha, s.delta, s.tl
	return []float64{
		ts * ts * tp * tp,
		ts*tp*(ts/qp+tp/qs) + tl*(a*tp*tp+d*ts*ts),
		ts*ts*(1+d) + tp*tp*(1+a) + ts*tp/(qs*qp) + tl*(a*tp/qp+d*ts/qs),
		ts*(1+d)/qs + tp*(1+a)/qp + tl*(a+d),
		s.psi,
	}
}

// coneLoad is the radiator-side factor of the driver volume velocity
func (s system) coneLoad() []float64 {
	return []float64{0, 0, s.tp * s.tp, s.tp/s.qp + s.delta*s.tl, 1 + s.delta}
}

// Assemble builds the transfer function of one variant from the current
// parameter values. The result is never cached.
func Assemble(variant Variant, v params.Values) BassFnData {
	switch variant {
	case Cone:
		return AssembleCone(v)
	case PassiveRadiator:
		return AssemblePassiveRadiator(v)
	case Impedance:
		return AssembleImpedance(v)
	default:
		return AssembleRadiator(v)
	}
}

// AssembleRadiator is the acoustic output of the system:
//
//	s²Ts²(s²Tp² + sTp/Qmp + 1) / D(s)
func AssembleRadiator(v params.Values) BassFnData {
	s := newSystem(v)
	ts2 := s.ts * s.ts
	return BassFnData{
		Numerator:   []float64{ts2 * s.tp * s.tp, ts2 * s.tp / s.qp, ts2, 0, 0},
		Denominator: s.denominator(),
	}
}

// AssembleCone is the driver displacement relative to the static
// displacement of the same driver in free air.
func AssembleCone(v params.Values) BassFnData {
	s := newSystem(v)
	return BassFnData{
		Numerator:   s.coneLoad(),
		Denominator: s.denominator(),
	}
}

// AssemblePassiveRadiator is the radiator displacement relative to the
// static displacement of the driver. Only the stiffness term survives in
// the numerator.
func AssemblePassiveRadiator(v params.Values) BassFnData {
	s := newSystem(v)
	return BassFnData{
		Numerator:   []float64{0, 0, 0, 0, s.delta},
		Denominator: s.denominator(),
	}
}

// AssembleImpedance is the voice-coil admittance times the loop resistance
// Re+Rg. The back-EMF term s·(Ts/Qe)·N(s) is subtracted from the shared
// denominator, where N is the cone load and Qe the electrical Q seen
// through the source resistance.
func AssembleImpedance(v params.Values) BassFnData {
	s := newSystem(v)
	qe := equations.SourceElectricalQ(v.V(equations.Qes), v.V(equations.Re), v.V(equations.Rg))
	k := s.ts / qe

	den := s.denominator()
	load := s.coneLoad()
	num := make([]float64, len(den))
	copy(num, den)
	// multiplying by s shifts the load one order up
	for i := 1; i < len(load); i++ {
		num[i-1] -= k * load[i]
	}

	return BassFnData{
		Numerator:   num,
		Denominator: den,
	}
}

// LoopResistance is Re+Rg, the impedance seen at DC
func LoopResistance(v params.Values) float64 {
	return v.V(equations.Re) + v.V(equations.Rg)
}

// ImpedanceOhms converts a sampled Impedance magnitude into ohms
func ImpedanceOhms(v params.Values, magnitude float64) float64 {
	return LoopResistance(v) / magnitude
}
