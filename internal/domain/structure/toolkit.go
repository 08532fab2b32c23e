package structure

import (
	"math"

	"github.com/turtacn/ChemVault/pkg/errors"
)

// DescriptorSet carries the computed molecular descriptors for one parsed
// structure.
type DescriptorSet struct {
	LogP               float64
	TPSA               float64
	HBondDonorCount    int
	HBondAcceptorCount int
	RotatableBondCount int
	HeavyAtomCount     int
	RingCount          int
	AromaticRingCount  int
	FormalCharge       int
}

// Toolkit is the structure-handling capability injected into the parser and
// calculator.  Availability is decided once at construction; callers check
// Available instead of probing for failures.
type Toolkit interface {
	// Available reports whether structural operations can be performed.
	Available() bool
	// Name identifies the implementation in logs and provenance fields.
	Name() string

	Parse(descriptor string) (*Mol, error)
	Canonicalize(mol *Mol) string
	MolFormula(mol *Mol) string
	MolWeight(mol *Mol) float64
	InChI(mol *Mol) string
	InChIKey(mol *Mol) string
	Descriptors(mol *Mol) DescriptorSet
}

// NewToolkit selects the toolkit implementation: the native one when
// enabled, a stub that reports unavailability otherwise.  Callers downstream
// degrade to the estimator path instead of failing.
func NewToolkit(enabled bool) Toolkit {
	if enabled {
		return &NativeToolkit{}
	}
	return disabledToolkit{}
}

// NativeToolkit is the pure-Go structure toolkit.  It understands the
// organic subset, bracket atoms, aromatic lowercase forms, branches, ring
// closures and disconnected components, and serializes deterministically.
type NativeToolkit struct{}

func (NativeToolkit) Available() bool { return true }
func (NativeToolkit) Name() string    { return "native" }

func (NativeToolkit) Parse(descriptor string) (*Mol, error) {
	return ParseSMILES(descriptor)
}

func (NativeToolkit) Canonicalize(mol *Mol) string {
	return CanonicalSMILES(mol)
}

func (NativeToolkit) MolFormula(mol *Mol) string {
	return hillFormula(mol.elementCounts())
}

func (NativeToolkit) MolWeight(mol *Mol) float64 {
	return round2(averageWeight(mol.elementCounts()))
}

func (NativeToolkit) InChI(mol *Mol) string {
	return structuralInChI(mol)
}

func (t NativeToolkit) InChIKey(mol *Mol) string {
	return structuralInChIKey(t.Canonicalize(mol))
}

func (NativeToolkit) Descriptors(mol *Mol) DescriptorSet {
	return DescriptorSet{
		LogP:               round2(partitionCoefficient(mol)),
		TPSA:               round2(polarSurfaceArea(mol)),
		HBondDonorCount:    hbondDonorCount(mol),
		HBondAcceptorCount: hbondAcceptorCount(mol),
		RotatableBondCount: rotatableBondCount(mol),
		HeavyAtomCount:     heavyAtomCount(mol),
		RingCount:          ringCount(mol),
		AromaticRingCount:  aromaticRingCount(mol),
		FormalCharge:       formalCharge(mol),
	}
}

// disabledToolkit stands in when structural processing is switched off.
type disabledToolkit struct{}

func (disabledToolkit) Available() bool { return false }
func (disabledToolkit) Name() string    { return "disabled" }

func (disabledToolkit) Parse(string) (*Mol, error) {
	return nil, errors.New(errors.ErrCodeToolkitUnavailable, "structure toolkit is disabled")
}

func (disabledToolkit) Canonicalize(*Mol) string          { return "" }
func (disabledToolkit) MolFormula(*Mol) string            { return "" }
func (disabledToolkit) MolWeight(*Mol) float64            { return 0 }
func (disabledToolkit) InChI(*Mol) string                 { return "" }
func (disabledToolkit) InChIKey(*Mol) string              { return "" }
func (disabledToolkit) Descriptors(*Mol) DescriptorSet    { return DescriptorSet{} }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
