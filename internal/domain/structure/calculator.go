package structure

import (
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Calculator computes the full property set for a descriptor.  It prefers
// the toolkit path and degrades to text-level estimation when the toolkit
// is absent or rejects the input; it never fails outright.
type Calculator struct {
	toolkit   Toolkit
	parser    *Parser
	estimator *Estimator
	logger    logging.Logger
}

// NewCalculator constructs a Calculator around the given toolkit.
func NewCalculator(toolkit Toolkit, logger logging.Logger) *Calculator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Calculator{
		toolkit:   toolkit,
		parser:    NewParser(toolkit, logger),
		estimator: NewEstimator(),
		logger:    logger,
	}
}

// Compute returns the property set for descriptor.  The CalculationSource
// field records which path produced it.
func (c *Calculator) Compute(descriptor string) chemistry.PropertySet {
	mol, fail := c.parser.Parse(descriptor)
	if fail != nil {
		c.logger.Warn("falling back to property estimation",
			logging.String("reason", fail.String()))
		return c.estimator.Estimate(descriptor)
	}

	desc := c.toolkit.Descriptors(mol)
	return chemistry.PropertySet{
		CanonicalForm:      c.toolkit.Canonicalize(mol),
		Formula:            c.toolkit.MolFormula(mol),
		ExactWeight:        c.toolkit.MolWeight(mol),
		InChI:              c.toolkit.InChI(mol),
		InChIKey:           c.toolkit.InChIKey(mol),
		LogP:               desc.LogP,
		TPSA:               desc.TPSA,
		HBondDonorCount:    desc.HBondDonorCount,
		HBondAcceptorCount: desc.HBondAcceptorCount,
		RotatableBondCount: desc.RotatableBondCount,
		HeavyAtomCount:     desc.HeavyAtomCount,
		RingCount:          desc.RingCount,
		AromaticRingCount:  desc.AromaticRingCount,
		FormalCharge:       desc.FormalCharge,
		CalculationSource:  chemistry.CalcToolkit,
	}
}

// ValidationReport summarizes a structural validation pass.
type ValidationReport struct {
	IsValid   bool     `json:"is_valid"`
	Issues    []string `json:"issues,omitempty"`
	AtomCount int      `json:"atom_count"`
	BondCount int      `json:"bond_count"`
	Formula   string   `json:"formula,omitempty"`
}

// Validate checks descriptor structurally and reports what was found.
// With no toolkit available the report states so but stays non-fatal.
func (c *Calculator) Validate(descriptor string) ValidationReport {
	mol, fail := c.parser.Parse(descriptor)
	if fail != nil {
		return ValidationReport{
			IsValid: false,
			Issues:  []string{fail.String()},
		}
	}
	return ValidationReport{
		IsValid:   true,
		AtomCount: len(mol.Atoms),
		BondCount: len(mol.Bonds),
		Formula:   c.toolkit.MolFormula(mol),
	}
}
