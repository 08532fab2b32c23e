package structure

import (
	"strings"

	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
)

// FailureKind classifies why a descriptor could not be parsed.
type FailureKind string

const (
	// FailureToolkitUnavailable means no structural toolkit is configured.
	// The input may be perfectly valid; callers degrade to estimation.
	FailureToolkitUnavailable FailureKind = "toolkit_unavailable"
	// FailureInvalidDescriptor means the toolkit rejected the input.
	FailureInvalidDescriptor FailureKind = "invalid_descriptor"
)

// ParseFailure describes a parse outcome that did not yield a structure.
type ParseFailure struct {
	Kind   FailureKind
	Detail string
}

func (f *ParseFailure) String() string {
	if f == nil {
		return ""
	}
	return string(f.Kind) + ": " + f.Detail
}

// CleanDescriptor strips surrounding whitespace and embedded control
// characters from a raw descriptor.  Inventory imports routinely carry
// trailing newlines and tab-separated residue.
func CleanDescriptor(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(cleaned)
}

// Parser turns raw descriptors into parsed structures via the injected
// toolkit.
type Parser struct {
	toolkit Toolkit
	logger  logging.Logger
}

// NewParser constructs a Parser.  A nil logger is replaced with a no-op.
func NewParser(toolkit Toolkit, logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Parser{toolkit: toolkit, logger: logger}
}

// Parse cleans and parses descriptor.  On failure it returns a nil Mol and
// a ParseFailure telling the caller whether the problem is the input or the
// environment.
func (p *Parser) Parse(descriptor string) (*Mol, *ParseFailure) {
	if !p.toolkit.Available() {
		p.logger.Warn("structure toolkit unavailable, skipping parse",
			logging.String("toolkit", p.toolkit.Name()))
		return nil, &ParseFailure{
			Kind:   FailureToolkitUnavailable,
			Detail: "no structure toolkit configured",
		}
	}

	cleaned := CleanDescriptor(descriptor)
	mol, err := p.toolkit.Parse(cleaned)
	if err != nil {
		return nil, &ParseFailure{
			Kind:   FailureInvalidDescriptor,
			Detail: err.Error(),
		}
	}
	return mol, nil
}

// Canonicalize parses descriptor and returns its canonical serialization.
// The result is deterministic and idempotent: canonicalizing a canonical
// form returns it unchanged.
func (p *Parser) Canonicalize(descriptor string) (string, *ParseFailure) {
	mol, fail := p.Parse(descriptor)
	if fail != nil {
		return "", fail
	}
	return p.toolkit.Canonicalize(mol), nil
}
