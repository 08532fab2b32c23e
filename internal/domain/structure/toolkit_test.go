package structure

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/pkg/errors"
)

func TestNativeToolkitAspirin(t *testing.T) {
	tk := NewToolkit(true)
	require.True(t, tk.Available())

	mol, err := tk.Parse("CC(=O)Oc1ccccc1C(=O)O")
	require.NoError(t, err)

	assert.Equal(t, "C9H8O4", tk.MolFormula(mol))
	assert.InDelta(t, 180.16, tk.MolWeight(mol), 0.001)
	assert.Equal(t, "InChI=1S/C9H8O4", tk.InChI(mol))

	d := tk.Descriptors(mol)
	assert.InDelta(t, 63.60, d.TPSA, 0.001)
	assert.InDelta(t, 0.36, d.LogP, 0.001)
	assert.Equal(t, 1, d.HBondDonorCount)
	assert.Equal(t, 4, d.HBondAcceptorCount)
	assert.Equal(t, 3, d.RotatableBondCount)
	assert.Equal(t, 13, d.HeavyAtomCount)
	assert.Equal(t, 1, d.RingCount)
	assert.Equal(t, 1, d.AromaticRingCount)
	assert.Equal(t, 0, d.FormalCharge)
}

func TestNativeToolkitEthanol(t *testing.T) {
	tk := NewToolkit(true)
	mol, err := tk.Parse("CCO")
	require.NoError(t, err)

	assert.Equal(t, "C2H6O", tk.MolFormula(mol))
	assert.InDelta(t, 46.07, tk.MolWeight(mol), 0.001)

	d := tk.Descriptors(mol)
	assert.InDelta(t, 20.23, d.TPSA, 0.001)
	assert.Equal(t, 1, d.HBondDonorCount)
	assert.Equal(t, 1, d.HBondAcceptorCount)
	assert.Equal(t, 0, d.RotatableBondCount)
	assert.Equal(t, 0, d.RingCount)
	assert.Equal(t, 3, d.HeavyAtomCount)
}

func TestNativeToolkitInChIKey(t *testing.T) {
	tk := NewToolkit(true)
	keyShape := regexp.MustCompile(`^[A-Z]{14}-[A-Z]{8}SA-N$`)

	aspirin, err := tk.Parse("CC(=O)Oc1ccccc1C(=O)O")
	require.NoError(t, err)
	reordered, err := tk.Parse("OC(=O)c1ccccc1OC(C)=O")
	require.NoError(t, err)
	ethanol, err := tk.Parse("CCO")
	require.NoError(t, err)

	key := tk.InChIKey(aspirin)
	assert.Regexp(t, keyShape, key)
	assert.Equal(t, key, tk.InChIKey(reordered),
		"equivalent structures must share a key")
	assert.NotEqual(t, key, tk.InChIKey(ethanol))
}

func TestNativeToolkitFormalCharge(t *testing.T) {
	tk := NewToolkit(true)
	mol, err := tk.Parse("[NH4+]")
	require.NoError(t, err)
	assert.Equal(t, 1, tk.Descriptors(mol).FormalCharge)
}

func TestDisabledToolkit(t *testing.T) {
	tk := NewToolkit(false)
	assert.False(t, tk.Available())
	assert.Equal(t, "disabled", tk.Name())

	_, err := tk.Parse("CCO")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeToolkitUnavailable))
}
