package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
)

func TestCleanDescriptor(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "CCO", "CCO"},
		{"surrounding whitespace", "  CCO \n", "CCO"},
		{"embedded tab", "CC\tO", "CCO"},
		{"carriage return", "CCO\r\n", "CCO"},
		{"control characters", "C\x00C\x1fO", "CCO"},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescriptor(tt.raw))
		})
	}
}

func TestParserParse(t *testing.T) {
	p := NewParser(NewToolkit(true), logging.NewNopLogger())

	mol, fail := p.Parse(" CCO\n")
	require.Nil(t, fail)
	assert.Len(t, mol.Atoms, 3)

	mol, fail = p.Parse("C1CC")
	assert.Nil(t, mol)
	require.NotNil(t, fail)
	assert.Equal(t, FailureInvalidDescriptor, fail.Kind)
}

func TestParserToolkitUnavailable(t *testing.T) {
	p := NewParser(NewToolkit(false), logging.NewNopLogger())

	mol, fail := p.Parse("CCO")
	assert.Nil(t, mol)
	require.NotNil(t, fail)
	assert.Equal(t, FailureToolkitUnavailable, fail.Kind)
}

func TestParserCanonicalize(t *testing.T) {
	p := NewParser(NewToolkit(true), logging.NewNopLogger())

	a, fail := p.Canonicalize("OCC")
	require.Nil(t, fail)
	b, fail := p.Canonicalize("CCO")
	require.Nil(t, fail)
	assert.Equal(t, a, b)

	again, fail := p.Canonicalize(a)
	require.Nil(t, fail)
	assert.Equal(t, a, again)
}
