package resolution

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/domain/structure"
	"github.com/turtacn/ChemVault/pkg/errors"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

func newTestService(sources ...Source) Service {
	resolver := NewResolver(sources, time.Second, nil, nil, nil)
	return NewService(structure.NewToolkit(true), resolver, nil)
}

func TestResolveAndEnrichAspirin(t *testing.T) {
	primary := &fakeSource{
		name:   "primary",
		result: foundRecord("50-78-2", "Aspirin", chemistry.SourcePrimaryDatabase, chemistry.ConfidenceHigh),
	}
	svc := newTestService(primary, identity.NewSyntheticSource())

	result, err := svc.ResolveAndEnrich(context.Background(),
		"CC(=O)Oc1ccccc1C(=O)O", chemistry.ResolutionHints{})
	require.NoError(t, err)

	assert.Equal(t, "C9H8O4", result.Properties.Formula)
	assert.InDelta(t, 180.16, result.Properties.ExactWeight, 0.001)
	assert.Equal(t, chemistry.CalcToolkit, result.Properties.CalculationSource)

	assert.Equal(t, "50-78-2", result.Identity.RegistryNumber)
	assert.Equal(t, "Aspirin", result.Identity.PreferredName)
	assert.Equal(t, chemistry.ConfidenceHigh, result.Identity.Confidence)

	// Gaps the source left open are filled from computed properties.
	assert.Equal(t, "C9H8O4", result.Identity.Formula)
	assert.Equal(t, result.Properties.CanonicalForm, result.Identity.CanonicalForm)

	assert.Equal(t, chemistry.QualityHigh, svc.QualitySummary(result))
}

func TestResolveAndEnrichAllSourcesFail(t *testing.T) {
	down := &fakeSource{name: "primary", result: chemistry.Failed("connection refused")}
	alsoDown := &fakeSource{name: "secondary", result: chemistry.Failed("timeout")}
	svc := newTestService(down, alsoDown, identity.NewSyntheticSource())

	result, err := svc.ResolveAndEnrich(context.Background(), "CCO", chemistry.ResolutionHints{})
	require.NoError(t, err)

	assert.Equal(t, "C2H6O", result.Properties.Formula)
	assert.Equal(t, chemistry.SourceSyntheticFallback, result.Identity.Source)
	assert.Equal(t, chemistry.ConfidenceVeryLow, result.Identity.Confidence)
	assert.True(t, identity.ValidRegistryNumber(result.Identity.RegistryNumber))
}

func TestResolveAndEnrichEquivalentDescriptors(t *testing.T) {
	svc := newTestService(identity.NewSyntheticSource())
	ctx := context.Background()

	a, err := svc.ResolveAndEnrich(ctx, "CCO", chemistry.ResolutionHints{})
	require.NoError(t, err)
	b, err := svc.ResolveAndEnrich(ctx, "OCC", chemistry.ResolutionHints{})
	require.NoError(t, err)

	// Resolution keys on the canonical form, so equivalent spellings share
	// one canonical form and one synthetic number.
	assert.Equal(t, a.Properties.CanonicalForm, b.Properties.CanonicalForm)
	assert.Equal(t, a.Identity.RegistryNumber, b.Identity.RegistryNumber)
}

func TestResolveAndEnrichEmptyInput(t *testing.T) {
	svc := newTestService(identity.NewSyntheticSource())

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := svc.ResolveAndEnrich(context.Background(), input, chemistry.ResolutionHints{})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeStructureEmpty))
	}
}

func TestResolveAndEnrichUnparseableInputDegrades(t *testing.T) {
	svc := newTestService(identity.NewSyntheticSource())

	result, err := svc.ResolveAndEnrich(context.Background(), "C1CC", chemistry.ResolutionHints{})
	require.NoError(t, err)

	assert.Equal(t, chemistry.CalcFallbackEstimator, result.Properties.CalculationSource)
	assert.Equal(t, chemistry.SourceSyntheticFallback, result.Identity.Source)
	assert.True(t, identity.ValidRegistryNumber(result.Identity.RegistryNumber))
}

func TestResolveAndEnrichHintName(t *testing.T) {
	svc := newTestService(identity.NewSyntheticSource())

	result, err := svc.ResolveAndEnrich(context.Background(), "FC(F)(F)CF",
		chemistry.ResolutionHints{Name: "refrigerant stock"})
	require.NoError(t, err)
	assert.Equal(t, "refrigerant stock", result.Identity.PreferredName)
}

func TestQualitySummary(t *testing.T) {
	svc := newTestService(identity.NewSyntheticSource())

	tests := []struct {
		name   string
		result *chemistry.ResolutionResult
		want   chemistry.QualityLevel
	}{
		{
			"all three booleans",
			&chemistry.ResolutionResult{
				Properties: chemistry.PropertySet{
					CanonicalForm:     "CCO",
					CalculationSource: chemistry.CalcToolkit,
				},
				Identity: chemistry.IdentityRecord{
					PreferredName:  "Ethanol",
					RegistryNumber: "64-17-5",
				},
			},
			chemistry.QualityHigh,
		},
		{
			"estimated structure drops one",
			&chemistry.ResolutionResult{
				Properties: chemistry.PropertySet{
					CalculationSource: chemistry.CalcFallbackEstimator,
				},
				Identity: chemistry.IdentityRecord{
					PreferredName:  "Ethanol",
					RegistryNumber: "64-17-5",
				},
			},
			chemistry.QualityMedium,
		},
		{
			"name only",
			&chemistry.ResolutionResult{
				Properties: chemistry.PropertySet{
					CalculationSource: chemistry.CalcFallbackEstimator,
				},
				Identity: chemistry.IdentityRecord{PreferredName: "something"},
			},
			chemistry.QualityLow,
		},
		{
			"malformed registry number does not count",
			&chemistry.ResolutionResult{
				Properties: chemistry.PropertySet{
					CanonicalForm:     "CCO",
					CalculationSource: chemistry.CalcToolkit,
				},
				Identity: chemistry.IdentityRecord{
					PreferredName:  "Ethanol",
					RegistryNumber: "not-a-number",
				},
			},
			chemistry.QualityMedium,
		},
		{"nil result", nil, chemistry.QualityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.QualitySummary(tt.result))
		})
	}
}
