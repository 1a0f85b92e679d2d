package transfer_test

import (
	"testing"

	"github.com/RMahshie/basscalc/internal/equations"
	"github.com/RMahshie/basscalc/internal/model"
	"github.com/RMahshie/basscalc/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default model, unrecomputed, is the reference scenario.
func TestDefaultModel_RadiatorResponse(t *testing.T) {
	g := model.MustNew()

	data := transfer.Assemble(transfer.Radiator, g)
	require.Len(t, data.Numerator, transfer.Order+1)
	require.Len(t, data.Denominator, transfer.Order+1)

	m20 := transfer.Evaluate(data, equations.TwoPi*20)
	m200 := transfer.Evaluate(data, equations.TwoPi*200)
	assert.InEpsilon(t, 0.9527116674782456, m20, 1e-10)
	assert.InEpsilon(t, 1.002199027053445, m200, 1e-10)

	// sampling goes through the same evaluator
	points := transfer.Sample(data, transfer.Sweep{Min: 20, Max: 200, Step: 180})
	require.Len(t, points, 2)
	assert.True(t, points[0].Valid)
	assert.InEpsilon(t, m20, points[0].Magnitude, 1e-12)
	assert.InEpsilon(t, m200, points[1].Magnitude, 1e-12)
}

func TestDefaultModel_AssembleDoesNotMutate(t *testing.T) {
	g := model.MustNew()
	before := make(map[string]float64)
	for _, p := range g.All() {
		before[p.Name] = p.Value
	}

	for _, variant := range []transfer.Variant{transfer.Radiator, transfer.Cone, transfer.PassiveRadiator, transfer.Impedance} {
		transfer.Assemble(variant, g)
	}

	for _, p := range g.All() {
		assert.Equal(t, before[p.Name], p.Value, p.Name)
	}
}
