// Package structure provides the local structure toolkit for the ChemVault
// resolution engine: SMILES parsing, canonical serialization, and property
// computation, together with the permissive text-based estimator used when
// the toolkit capability is disabled.  A parsed Mol is owned by a single
// resolution call; it is never persisted or shared across calls.
package structure

import (
	"sort"
	"strconv"
	"strings"
)

// Atom is one node of the molecular graph.  Hydrogens are not stored as
// atoms; they live in HCount (explicit bracket count or computed implicit
// count).
type Atom struct {
	Symbol   string
	Aromatic bool
	Charge   int
	Isotope  int

	// HCount is the number of attached hydrogens.  For bracket atoms it is
	// the explicit count from the descriptor; for organic-subset atoms it is
	// filled in by assignImplicitHydrogens after parsing.
	HCount int

	// explicitH marks bracket atoms, whose HCount must be preserved verbatim
	// during canonical serialization.
	explicitH bool
}

// Bond is one edge of the molecular graph.
type Bond struct {
	A, B     int
	Order    int
	Aromatic bool
}

// Other returns the endpoint of b opposite to atom idx.
func (b Bond) Other(idx int) int {
	if b.A == idx {
		return b.B
	}
	return b.A
}

// Mol is the in-memory molecular graph produced by the parser.
type Mol struct {
	Atoms []Atom
	Bonds []Bond

	// adj[i] lists the bond indices incident to atom i.
	adj [][]int
}

func (m *Mol) addAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.Atoms) - 1
}

func (m *Mol) addBond(a, b, order int, aromatic bool) {
	m.Bonds = append(m.Bonds, Bond{A: a, B: b, Order: order, Aromatic: aromatic})
	idx := len(m.Bonds) - 1
	m.adj[a] = append(m.adj[a], idx)
	m.adj[b] = append(m.adj[b], idx)
}

// Degree returns the number of heavy-atom neighbours of atom idx.
func (m *Mol) Degree(idx int) int {
	return len(m.adj[idx])
}

// bondOrderSum totals bond orders around atom idx, counting aromatic bonds
// as single; the delocalised contribution is added separately during
// implicit-hydrogen assignment.
func (m *Mol) bondOrderSum(idx int) int {
	sum := 0
	for _, bi := range m.adj[idx] {
		b := m.Bonds[bi]
		if b.Aromatic {
			sum++
		} else {
			sum += b.Order
		}
	}
	return sum
}

// defaultValence lists the normal valences used for implicit-hydrogen
// assignment of organic-subset atoms.
var defaultValence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3,
	"S": 2, "F": 1, "Cl": 1, "Br": 1, "I": 1,
}

// assignImplicitHydrogens fills HCount for every non-bracket atom using the
// organic-subset valence rules.  Aromatic atoms receive one extra unit of
// consumed valence for the delocalised bond.
func (m *Mol) assignImplicitHydrogens() {
	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.explicitH {
			continue
		}
		valence, ok := defaultValence[normalizeSymbol(a.Symbol)]
		if !ok {
			a.HCount = 0
			continue
		}
		// Charge shifts the available valence: [O-] binds one fewer
		// hydrogen, protonated nitrogen one more.
		valence += a.Charge
		used := m.bondOrderSum(i)
		if a.Aromatic {
			used++
		}
		h := valence - used
		if h < 0 {
			h = 0
		}
		a.HCount = h
	}
}

// normalizeSymbol maps an aromatic lowercase symbol to its element symbol.
func normalizeSymbol(sym string) string {
	if sym == "" {
		return sym
	}
	if sym[0] >= 'a' && sym[0] <= 'z' {
		return strings.ToUpper(sym[:1]) + sym[1:]
	}
	return sym
}

// atomicWeight holds average atomic masses for the elements the engine
// expects to meet in laboratory inventories.
var atomicWeight = map[string]float64{
	"H": 1.008, "B": 10.811, "C": 12.011, "N": 14.007, "O": 15.999,
	"F": 18.998, "Na": 22.990, "Mg": 24.305, "Al": 26.982, "Si": 28.086,
	"P": 30.974, "S": 32.065, "Cl": 35.453, "K": 39.098, "Ca": 40.078,
	"Mn": 54.938, "Fe": 55.845, "Co": 58.933, "Ni": 58.693, "Cu": 63.546,
	"Zn": 65.380, "Se": 78.971, "Br": 79.904, "Ag": 107.868, "Sn": 118.710,
	"I": 126.904, "Pt": 195.084, "Au": 196.967, "Hg": 200.592, "Pb": 207.200,
	"Li": 6.941, "Ti": 47.867, "As": 74.922,
}

// elementCounts tallies every element in the molecule, hydrogens included.
func (m *Mol) elementCounts() map[string]int {
	counts := make(map[string]int)
	for i := range m.Atoms {
		sym := normalizeSymbol(m.Atoms[i].Symbol)
		if sym == "*" {
			continue
		}
		counts[sym]++
		counts["H"] += m.Atoms[i].HCount
	}
	if counts["H"] == 0 {
		delete(counts, "H")
	}
	return counts
}

// hillFormula renders element counts in Hill order: carbon first, hydrogen
// second, all remaining elements alphabetically.  Without carbon, every
// element (hydrogen included) sorts alphabetically.
func hillFormula(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	var order []string
	rest := make([]string, 0, len(counts))
	if counts["C"] > 0 {
		order = append(order, "C")
		if counts["H"] > 0 {
			order = append(order, "H")
		}
		for sym := range counts {
			if sym != "C" && sym != "H" {
				rest = append(rest, sym)
			}
		}
	} else {
		for sym := range counts {
			rest = append(rest, sym)
		}
	}
	sort.Strings(rest)
	order = append(order, rest...)

	var sb strings.Builder
	for _, sym := range order {
		n := counts[sym]
		if n == 0 {
			continue
		}
		sb.WriteString(sym)
		if n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

// averageWeight sums average atomic masses over counts.
func averageWeight(counts map[string]int) float64 {
	var w float64
	for sym, n := range counts {
		w += atomicWeight[sym] * float64(n)
	}
	return w
}
