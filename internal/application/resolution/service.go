package resolution

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/ChemVault/internal/domain/identity"
	"github.com/turtacn/ChemVault/internal/domain/structure"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/errors"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Service is the orchestration facade and the only surface collaborating
// layers call: one operation to resolve and enrich a descriptor, one to
// score the result.
type Service interface {
	ResolveAndEnrich(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) (*chemistry.ResolutionResult, error)
	QualitySummary(result *chemistry.ResolutionResult) chemistry.QualityLevel
}

type serviceImpl struct {
	calculator *structure.Calculator
	resolver   *Resolver
	logger     logging.Logger
}

// NewService constructs the facade over a toolkit-backed calculator and a
// configured resolver chain.
func NewService(toolkit structure.Toolkit, resolver *Resolver, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		calculator: structure.NewCalculator(toolkit, logger),
		resolver:   resolver,
		logger:     logger,
	}
}

// ResolveAndEnrich validates, parses, computes properties, resolves the
// identity on the canonical form, and merges everything into one result.
// Only empty input is an error; everything else degrades to estimates and
// the synthetic fallback.
func (s *serviceImpl) ResolveAndEnrich(ctx context.Context, descriptor string, hints chemistry.ResolutionHints) (*chemistry.ResolutionResult, error) {
	log := s.logger.With(logging.String("request_id", uuid.NewString()))

	cleaned := structure.CleanDescriptor(descriptor)
	if cleaned == "" {
		return nil, errors.New(errors.ErrCodeStructureEmpty,
			"descriptor must not be empty")
	}

	properties := s.calculator.Compute(cleaned)

	// The canonical form keys the resolution so equivalent spellings of one
	// structure resolve identically; the raw input stands in when the
	// toolkit could not produce one.
	key := properties.CanonicalForm
	if key == "" {
		key = cleaned
	}
	record := s.resolver.Resolve(ctx, key, hints)
	mergeEnrichment(&record, properties)

	log.Info("descriptor resolved",
		logging.String("formula", properties.Formula),
		logging.String("identity_source", string(record.Source)),
		logging.String("confidence", string(record.Confidence)))

	return &chemistry.ResolutionResult{
		Descriptor: cleaned,
		Properties: properties,
		Identity:   record,
	}, nil
}

// mergeEnrichment fills identity gaps from computed properties.  Source
// data always wins; properties only supply what the source left empty.
func mergeEnrichment(record *chemistry.IdentityRecord, properties chemistry.PropertySet) {
	if record.Formula == "" {
		record.Formula = properties.Formula
	}
	if record.ExactWeight == 0 {
		record.ExactWeight = properties.ExactWeight
	}
	if record.CanonicalForm == "" {
		record.CanonicalForm = properties.CanonicalForm
	}
}

// QualitySummary scores a result from three booleans: structure valid, name
// plausible, registry number well-formed.  All three give high, two give
// medium, fewer give low.
func (s *serviceImpl) QualitySummary(result *chemistry.ResolutionResult) chemistry.QualityLevel {
	if result == nil {
		return chemistry.QualityLow
	}

	score := 0
	if result.Properties.CalculationSource == chemistry.CalcToolkit &&
		result.Properties.CanonicalForm != "" {
		score++
	}
	if result.Identity.PreferredName != "" {
		score++
	}
	if identity.ValidRegistryNumber(result.Identity.RegistryNumber) {
		score++
	}

	switch score {
	case 3:
		return chemistry.QualityHigh
	case 2:
		return chemistry.QualityMedium
	default:
		return chemistry.QualityLow
	}
}
