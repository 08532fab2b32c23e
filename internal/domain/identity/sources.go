package identity

import (
	"context"

	"github.com/turtacn/ChemVault/internal/domain/structure"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// PatternSource is the third link of the resolution chain: matching against
// the curated compound table and functional-group signatures.  It runs
// locally and therefore never fails; misses are clean NotFound outcomes.
type PatternSource struct {
	byCanonical map[string]knownCompound
}

// NewPatternSource builds a PatternSource, canonicalizing the compound
// table keys through the toolkit so every equivalent spelling of a known
// structure matches.  With no usable toolkit the raw keys still work for
// descriptors written the common way.
func NewPatternSource(toolkit structure.Toolkit) *PatternSource {
	byCanonical := make(map[string]knownCompound, len(knownCompounds))
	for descriptor, compound := range knownCompounds {
		key := descriptor
		if toolkit != nil && toolkit.Available() {
			if mol, err := toolkit.Parse(descriptor); err == nil {
				key = toolkit.Canonicalize(mol)
			}
		}
		byCanonical[key] = compound
	}
	return &PatternSource{byCanonical: byCanonical}
}

func (s *PatternSource) Name() string { return "pattern_guess" }

// TryResolve matches descriptor against the compound table, then against
// the functional-group signatures for a name-only record.
func (s *PatternSource) TryResolve(_ context.Context, descriptor string, _ chemistry.ResolutionHints) chemistry.SourceResult {
	compound, ok := s.byCanonical[descriptor]
	if !ok {
		compound, ok = knownCompounds[descriptor]
	}
	if ok {
		return chemistry.Found(chemistry.IdentityRecord{
			RegistryNumber: compound.registryNumber,
			PreferredName:  compound.name,
			Source:         chemistry.SourcePatternGuess,
			Confidence:     chemistry.ConfidenceLow,
		})
	}

	if name, guessed := GuessName(descriptor); guessed {
		return chemistry.Found(chemistry.IdentityRecord{
			PreferredName: name,
			Source:        chemistry.SourcePatternGuess,
			Confidence:    chemistry.ConfidenceLow,
		})
	}
	return chemistry.NotFound()
}

// SyntheticSource is the terminal link of the resolution chain.  It always
// produces a record, so every resolution terminates with an identity.
type SyntheticSource struct{}

// NewSyntheticSource constructs a SyntheticSource.
func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{}
}

func (s *SyntheticSource) Name() string { return "synthetic_fallback" }

// TryResolve derives a deterministic pseudo registry number from the
// descriptor.  A caller-provided name hint is kept; otherwise the name
// guesser fills in whatever generic name applies.
func (s *SyntheticSource) TryResolve(_ context.Context, descriptor string, hints chemistry.ResolutionHints) chemistry.SourceResult {
	record := chemistry.IdentityRecord{
		RegistryNumber: SynthesizeRegistryNumber(descriptor),
		Source:         chemistry.SourceSyntheticFallback,
		Confidence:     chemistry.ConfidenceVeryLow,
	}
	if hints.Name != "" {
		record.PreferredName = hints.Name
	} else if name, guessed := GuessName(descriptor); guessed {
		record.PreferredName = name
	}
	return chemistry.Found(record)
}
