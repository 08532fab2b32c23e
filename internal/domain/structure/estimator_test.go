package structure

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

func TestEstimatorAtomCounting(t *testing.T) {
	tests := []struct {
		name        string
		descriptor  string
		wantFormula string
		wantWeight  float64
	}{
		// Counting is textual: implicit hydrogens are invisible here.
		{"ethanol text", "CCO", "C2O", 40.02},
		{"chloroform keeps Cl whole", "ClC(Cl)Cl", "CCl3", 118.37},
		{"bromobenzene aromatic", "Brc1ccccc1", "C6Br", 151.97},
		{"bracket hydrogens counted", "[NH4+]", "H4N", 18.04},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewEstimator().Estimate(tt.descriptor)
			assert.Equal(t, tt.wantFormula, ps.Formula)
			assert.InDelta(t, tt.wantWeight, ps.ExactWeight, 0.001)
			assert.Equal(t, chemistry.CalcFallbackEstimator, ps.CalculationSource)
		})
	}
}

func TestEstimatorPseudoIdentifiers(t *testing.T) {
	ps := NewEstimator().Estimate("CCO")
	assert.Equal(t, "InChI=1S/C2O", ps.InChI)
	assert.True(t, strings.HasPrefix(ps.InChIKey, "EST-"))
	assert.Len(t, ps.InChIKey, 4+14)

	// Deterministic across calls.
	assert.Equal(t, ps.InChIKey, NewEstimator().Estimate("CCO").InChIKey)
	assert.NotEqual(t, ps.InChIKey, NewEstimator().Estimate("CCN").InChIKey)
}

func TestEstimatorNoExtractableAtoms(t *testing.T) {
	ps := NewEstimator().Estimate("@#%!")
	assert.Empty(t, ps.Formula)
	assert.Zero(t, ps.ExactWeight)
	assert.Equal(t, chemistry.CalcFallbackEstimator, ps.CalculationSource)
}

func TestEstimatorRoughDescriptors(t *testing.T) {
	ps := NewEstimator().Estimate("c1ccccc1")
	assert.Equal(t, 1, ps.RingCount)
	assert.Equal(t, 6, ps.HeavyAtomCount)
	assert.Equal(t, 0, ps.HBondAcceptorCount)

	ps = NewEstimator().Estimate("NCCO")
	assert.Equal(t, 2, ps.HBondAcceptorCount)
	assert.Equal(t, 0, ps.RingCount)
}
