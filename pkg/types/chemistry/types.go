// Package chemistry defines the Data Transfer Objects and enumerations shared
// by every layer of the ChemVault resolution engine.  No domain logic lives
// here — only plain data types that are safe to import from any layer without
// creating circular dependencies.
package chemistry

// ─────────────────────────────────────────────────────────────────────────────
// CalculationSource — origin of a computed property set
// ─────────────────────────────────────────────────────────────────────────────

// CalculationSource records which computation path produced a PropertySet.
type CalculationSource string

const (
	// CalcToolkit means the structure toolkit parsed the descriptor and all
	// numeric fields were derived from the molecular graph.
	CalcToolkit CalculationSource = "toolkit"

	// CalcFallbackEstimator means the toolkit was unavailable (or parsing
	// failed) and every field is a text-pattern estimate.  Downstream
	// consumers must treat the numbers as rough approximations.
	CalcFallbackEstimator CalculationSource = "fallback_estimator"
)

// ─────────────────────────────────────────────────────────────────────────────
// IdentitySource / Confidence — provenance tags for resolved identities
// ─────────────────────────────────────────────────────────────────────────────

// IdentitySource identifies which link of the resolution chain produced an
// IdentityRecord.
type IdentitySource string

const (
	// SourceToolkit marks identity fields derived locally from the structure
	// toolkit (canonical form, formula, weight) with no external lookup.
	SourceToolkit IdentitySource = "toolkit"

	// SourcePrimaryDatabase marks a hit from the structure-search-capable
	// database (PubChem-style exact-structure match plus synonym scan).
	SourcePrimaryDatabase IdentitySource = "primary_database"

	// SourceSecondaryDatabase marks a hit from the name/identifier resolver
	// (CIR-style), which may return partial fields.
	SourceSecondaryDatabase IdentitySource = "secondary_database"

	// SourcePatternGuess marks a match against the curated table of
	// well-known structural signatures.
	SourcePatternGuess IdentitySource = "pattern_guess"

	// SourceSyntheticFallback marks a deterministically generated placeholder
	// identity.  It never represents authoritative data.
	SourceSyntheticFallback IdentitySource = "synthetic_fallback"
)

// Confidence is the coarse trust level attached to a resolved identity.
type Confidence string

const (
	ConfidenceHigh    Confidence = "high"
	ConfidenceMedium  Confidence = "medium"
	ConfidenceLow     Confidence = "low"
	ConfidenceVeryLow Confidence = "very_low"
)

// rank orders confidence levels for comparison; higher is more trustworthy.
var confidenceRank = map[Confidence]int{
	ConfidenceVeryLow: 0,
	ConfidenceLow:     1,
	ConfidenceMedium:  2,
	ConfidenceHigh:    3,
}

// AtLeast reports whether c is at least as trustworthy as other.
func (c Confidence) AtLeast(other Confidence) bool {
	return confidenceRank[c] >= confidenceRank[other]
}

// ─────────────────────────────────────────────────────────────────────────────
// QualityLevel — overall record quality from QualitySummary
// ─────────────────────────────────────────────────────────────────────────────

// QualityLevel scores the overall data quality of a ResolutionResult.
type QualityLevel string

const (
	QualityHigh   QualityLevel = "high"
	QualityMedium QualityLevel = "medium"
	QualityLow    QualityLevel = "low"
)

// ─────────────────────────────────────────────────────────────────────────────
// PropertySet — computed physicochemical properties
// ─────────────────────────────────────────────────────────────────────────────

// PropertySet holds every property the calculator derives for one descriptor.
// CalculationSource is always set; when it is CalcFallbackEstimator the
// numeric fields are best-effort estimates produced by documented heuristics,
// never fabricated precision.
type PropertySet struct {
	CanonicalForm string  `json:"canonical_form"`
	Formula       string  `json:"formula"`
	ExactWeight   float64 `json:"exact_weight"`
	InChI         string  `json:"inchi"`
	InChIKey      string  `json:"inchikey"`

	LogP               float64 `json:"logp"`
	TPSA               float64 `json:"tpsa"`
	HBondDonorCount    int     `json:"h_bond_donor_count"`
	HBondAcceptorCount int     `json:"h_bond_acceptor_count"`
	RotatableBondCount int     `json:"rotatable_bond_count"`
	HeavyAtomCount     int     `json:"heavy_atom_count"`
	RingCount          int     `json:"ring_count"`
	AromaticRingCount  int     `json:"aromatic_ring_count"`
	FormalCharge       int     `json:"formal_charge"`

	CalculationSource CalculationSource `json:"calculation_source"`
}

// IsEmpty reports whether the set carries no structural data at all.  The
// fallback estimator emits an empty set (rather than an error) when it cannot
// extract a single atom symbol from the descriptor text; downstream code must
// treat this as "no data".
func (p PropertySet) IsEmpty() bool {
	return p.Formula == "" && p.ExactWeight == 0 && p.HeavyAtomCount == 0
}

// ─────────────────────────────────────────────────────────────────────────────
// IdentityRecord — provenance-tagged resolved identity
// ─────────────────────────────────────────────────────────────────────────────

// IdentityRecord is the normalized output of one resolution chain run.
// Invariants: Confidence is ConfidenceHigh only when Source is
// SourcePrimaryDatabase with a full structural match, and Confidence is
// ConfidenceVeryLow whenever Source is SourceSyntheticFallback.
type IdentityRecord struct {
	RegistryNumber string  `json:"registry_number,omitempty"`
	PreferredName  string  `json:"preferred_name,omitempty"`
	Formula        string  `json:"formula,omitempty"`
	ExactWeight    float64 `json:"exact_weight,omitempty"`
	CanonicalForm  string  `json:"canonical_form,omitempty"`

	Source     IdentitySource `json:"source"`
	Confidence Confidence     `json:"confidence"`
}

// HasIdentity reports whether the record carries at least one of the two
// critical identity fields the chain short-circuits on.
func (r IdentityRecord) HasIdentity() bool {
	return r.RegistryNumber != "" || r.PreferredName != ""
}

// ─────────────────────────────────────────────────────────────────────────────
// ResolutionResult — the merged output of ResolveAndEnrich
// ─────────────────────────────────────────────────────────────────────────────

// ResolutionResult is the single record returned to callers: the original
// descriptor, its computed properties, and the accepted identity.  Results are
// created per call and never cached inside the engine; caching, if desired,
// is the caller's responsibility.
type ResolutionResult struct {
	Descriptor string         `json:"descriptor"`
	Properties PropertySet    `json:"properties"`
	Identity   IdentityRecord `json:"identity"`
}

// ResolutionHints carries the optional partial-identity inputs a caller may
// supply alongside the structural descriptor.
type ResolutionHints struct {
	Name           string `json:"name,omitempty"`
	RegistryNumber string `json:"registry_number,omitempty"`
}
