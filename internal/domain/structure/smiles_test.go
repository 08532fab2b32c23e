package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/pkg/errors"
)

func TestParseSMILES(t *testing.T) {
	tests := []struct {
		name        string
		descriptor  string
		wantAtoms   int
		wantBonds   int
		wantFormula string
	}{
		{"ethanol", "CCO", 3, 2, "C2H6O"},
		{"benzene aromatic", "c1ccccc1", 6, 6, "C6H6"},
		{"aspirin", "CC(=O)Oc1ccccc1C(=O)O", 13, 13, "C9H8O4"},
		{"isobutane branches", "CC(C)C", 4, 3, "C4H10"},
		{"dinitrogen triple bond", "N#N", 2, 1, "N2"},
		{"sodium chloride components", "[Na+].[Cl-]", 2, 0, "ClNa"},
		{"percent ring label", "C%10CC%10", 3, 3, "C3H6"},
		{"isotope methane", "[13CH4]", 1, 0, "CH4"},
		{"chloroform two-letter symbol", "ClC(Cl)Cl", 4, 3, "CHCl3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mol, err := ParseSMILES(tt.descriptor)
			require.NoError(t, err)
			assert.Len(t, mol.Atoms, tt.wantAtoms)
			assert.Len(t, mol.Bonds, tt.wantBonds)
			assert.Equal(t, tt.wantFormula, hillFormula(mol.elementCounts()))
		})
	}
}

func TestParseSMILESBracketAtoms(t *testing.T) {
	mol, err := ParseSMILES("[NH4+]")
	require.NoError(t, err)
	require.Len(t, mol.Atoms, 1)
	assert.Equal(t, "N", mol.Atoms[0].Symbol)
	assert.Equal(t, 4, mol.Atoms[0].HCount)
	assert.Equal(t, 1, mol.Atoms[0].Charge)

	mol, err = ParseSMILES("[O-2]")
	require.NoError(t, err)
	assert.Equal(t, -2, mol.Atoms[0].Charge)

	mol, err = ParseSMILES("C[C@@H](N)C(=O)O")
	require.NoError(t, err)
	assert.Equal(t, "C3H7NO2", hillFormula(mol.elementCounts()))
}

func TestParseSMILESImplicitHydrogens(t *testing.T) {
	mol, err := ParseSMILES("CCO")
	require.NoError(t, err)
	assert.Equal(t, 3, mol.Atoms[0].HCount)
	assert.Equal(t, 2, mol.Atoms[1].HCount)
	assert.Equal(t, 1, mol.Atoms[2].HCount)

	mol, err = ParseSMILES("c1ccccc1")
	require.NoError(t, err)
	for i := range mol.Atoms {
		assert.Equal(t, 1, mol.Atoms[i].HCount)
	}
}

func TestParseSMILESErrors(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
		wantCode   errors.ErrorCode
	}{
		{"empty input", "", errors.ErrCodeStructureEmpty},
		{"unclosed branch", "C(C", errors.ErrCodeStructureInvalid},
		{"unmatched close", "C)C", errors.ErrCodeStructureInvalid},
		{"unclosed ring", "C1CC", errors.ErrCodeStructureInvalid},
		{"dangling bond", "C=", errors.ErrCodeStructureInvalid},
		{"branch before atom", "(C)", errors.ErrCodeStructureInvalid},
		{"unknown character", "CXC", errors.ErrCodeStructureInvalid},
		{"unclosed bracket", "[CH4", errors.ErrCodeStructureInvalid},
		{"empty bracket", "[]", errors.ErrCodeStructureInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSMILES(tt.descriptor)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}
