package structure

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Estimator derives approximate properties straight from descriptor text
// when no toolkit is available or parsing failed.  Every value it produces
// is tagged with the fallback calculation source so consumers can tell
// estimates from computed properties.
type Estimator struct{}

// NewEstimator constructs an Estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// estimatorSymbols lists recognizable element tokens, multi-letter symbols
// first so Cl is never miscounted as C plus l, nor Br as B plus r.
var estimatorSymbols = []string{
	"Cl", "Br", "Si", "Se",
	"C", "N", "O", "S", "P", "F", "I", "B", "H",
}

// countAtoms tallies element occurrences in raw descriptor text.  Aromatic
// lowercase forms count toward their element; other characters (bonds,
// branches, ring digits, charges) are skipped.  Digits directly after a
// symbol count as a multiplier only inside brackets, where they are
// hydrogen counts rather than ring-closure labels.
func countAtoms(descriptor string) map[string]int {
	counts := map[string]int{}
	i := 0
	inBracket := false
	for i < len(descriptor) {
		switch descriptor[i] {
		case '[':
			inBracket = true
		case ']':
			inBracket = false
		}
		matched := false
		for _, sym := range estimatorSymbols {
			if strings.HasPrefix(descriptor[i:], sym) {
				n := 1
				i += len(sym)
				if inBracket && i < len(descriptor) && descriptor[i] >= '0' && descriptor[i] <= '9' {
					n = int(descriptor[i] - '0')
					i++
				}
				counts[sym] += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		// Aromatic organic-subset atoms appear lowercase.
		switch descriptor[i] {
		case 'c':
			counts["C"]++
		case 'n':
			counts["N"]++
		case 'o':
			counts["O"]++
		case 's':
			counts["S"]++
		case 'p':
			counts["P"]++
		case 'b':
			counts["B"]++
		}
		i++
	}
	return counts
}

// Estimate computes a best-effort PropertySet from descriptor text alone.
// When no atoms can be extracted it returns an empty set, not an error: an
// unreadable descriptor degrades quality, it does not abort resolution.
func (e *Estimator) Estimate(descriptor string) chemistry.PropertySet {
	cleaned := CleanDescriptor(descriptor)
	counts := countAtoms(cleaned)

	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return chemistry.PropertySet{
			CalculationSource: chemistry.CalcFallbackEstimator,
		}
	}

	formula := hillFormula(counts)
	weight := 0.0
	heavy := 0
	for sym, c := range counts {
		weight += atomicWeight[sym] * float64(c)
		if sym != "H" {
			heavy += c
		}
	}

	ps := chemistry.PropertySet{
		Formula:            formula,
		ExactWeight:        round2(weight),
		InChI:              "InChI=1S/" + formula,
		InChIKey:           pseudoInChIKey(cleaned),
		LogP:               round2(estimateLogP(counts)),
		TPSA:               round2(estimateTPSA(counts)),
		HBondDonorCount:    strings.Count(cleaned, "OH") + strings.Count(cleaned, "NH"),
		HBondAcceptorCount: counts["N"] + counts["O"],
		HeavyAtomCount:     heavy,
		RingCount:          estimateRingCount(cleaned),
		FormalCharge:       strings.Count(cleaned, "+") - strings.Count(cleaned, "-"),
		CalculationSource:  chemistry.CalcFallbackEstimator,
	}
	return ps
}

func estimateLogP(counts map[string]int) float64 {
	total := 0.0
	for sym, c := range counts {
		total += logPContributions[sym] * float64(c)
	}
	return total
}

func estimateTPSA(counts map[string]int) float64 {
	return 17.07*float64(counts["O"]) + 12.36*float64(counts["N"])
}

// estimateRingCount pairs up ring-closure digits in the raw text.
func estimateRingCount(descriptor string) int {
	digits := 0
	for i := 0; i < len(descriptor); i++ {
		if descriptor[i] >= '1' && descriptor[i] <= '9' {
			// Skip charge magnitudes and bracket hydrogen counts.
			if i > 0 && (descriptor[i-1] == '+' || descriptor[i-1] == '-' || descriptor[i-1] == 'H') {
				continue
			}
			digits++
		}
	}
	return digits / 2
}

// pseudoInChIKey derives a clearly-marked estimated key.  The EST- prefix
// makes it impossible to confuse with a real 27-character key.
func pseudoInChIKey(descriptor string) string {
	sum := sha256.Sum256([]byte(descriptor))
	return "EST-" + strings.ToUpper(fmt.Sprintf("%x", sum[:7]))
}
