package structure

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CanonicalSMILES serializes mol into its canonical textual form.  The
// algorithm is the classic two-step scheme: iterative invariant refinement
// assigns every atom a canonical rank, then a depth-first writer emits atoms
// in rank order.  Ranks depend only on the graph, so two parses of
// equivalent descriptors (whatever their atom ordering) produce the
// identical string — the invariant the rest of the pipeline relies on for
// dedup and identity matching.
func CanonicalSMILES(mol *Mol) string {
	ranks := canonicalRanks(mol)
	w := &smilesWriter{mol: mol, ranks: ranks}
	return w.write()
}

// ─────────────────────────────────────────────────────────────────────────────
// Canonical ranking
// ─────────────────────────────────────────────────────────────────────────────

// canonicalRanks assigns each atom a rank in [0, len(atoms)) such that the
// rank ordering is invariant under input atom reordering.  Ties that survive
// full refinement connect symmetry-equivalent atoms, for which any choice
// yields the same serialization.
func canonicalRanks(mol *Mol) []int {
	n := len(mol.Atoms)
	inv := make([]string, n)
	for i := range mol.Atoms {
		a := &mol.Atoms[i]
		inv[i] = fmt.Sprintf("%s|%d|%d|%d|%d|%t",
			normalizeSymbol(a.Symbol), mol.Degree(i), a.Charge, a.HCount, a.Isotope, a.Aromatic)
	}
	ranks := ranksFromInvariants(inv)

	for {
		ranks = refine(mol, ranks)
		if distinct(ranks) == n {
			return ranks
		}
		// Symmetry remains: break the lowest tied rank and keep refining.
		ranks = breakTie(ranks)
	}
}

// refine repeatedly folds neighbour ranks into each atom's invariant until
// the partition stops getting finer.
func refine(mol *Mol, ranks []int) []int {
	prev := distinct(ranks)
	for {
		inv := make([]string, len(ranks))
		for i := range ranks {
			neigh := make([]string, 0, len(mol.adj[i]))
			for _, bi := range mol.adj[i] {
				b := mol.Bonds[bi]
				order := b.Order
				if b.Aromatic {
					order = 0 // aromatic bonds sort before single
				}
				neigh = append(neigh, fmt.Sprintf("%03d:%d", ranks[b.Other(i)], order))
			}
			sort.Strings(neigh)
			inv[i] = fmt.Sprintf("%03d|%s", ranks[i], strings.Join(neigh, ","))
		}
		ranks = ranksFromInvariants(inv)
		d := distinct(ranks)
		if d == prev {
			return ranks
		}
		prev = d
	}
}

// breakTie promotes one atom of the lowest tied rank ahead of its peers.
// The atoms sharing a rank after full refinement are structurally
// interchangeable, so promoting the first of them is deterministic for any
// input ordering of an equivalent descriptor.
func breakTie(ranks []int) []int {
	lowest, chosen := -1, -1
	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}
	for i, r := range ranks {
		if counts[r] > 1 && (lowest == -1 || r < lowest) {
			lowest, chosen = r, i
		}
	}
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r * 2
	}
	out[chosen]--
	return ranksFromInvariants(intInvariants(out))
}

func intInvariants(vals []int) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%06d", v)
	}
	return out
}

// ranksFromInvariants maps invariant strings to dense ranks, identical
// strings sharing a rank.
func ranksFromInvariants(inv []string) []int {
	uniq := make([]string, len(inv))
	copy(uniq, inv)
	sort.Strings(uniq)
	uniq = dedupe(uniq)

	pos := make(map[string]int, len(uniq))
	for i, s := range uniq {
		pos[s] = i
	}
	ranks := make([]int, len(inv))
	for i, s := range inv {
		ranks[i] = pos[s]
	}
	return ranks
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func distinct(ranks []int) int {
	seen := map[int]bool{}
	for _, r := range ranks {
		seen[r] = true
	}
	return len(seen)
}

// ─────────────────────────────────────────────────────────────────────────────
// Depth-first writer
// ─────────────────────────────────────────────────────────────────────────────

type ringClosure struct {
	label int
	bond  int
}

type smilesWriter struct {
	mol   *Mol
	ranks []int

	visited   []bool
	bondUsed  []bool
	closures  [][]ringClosure // per atom, sorted by discovery
	nextLabel int
	sb        strings.Builder
}

func (w *smilesWriter) write() string {
	n := len(w.mol.Atoms)
	w.visited = make([]bool, n)
	w.bondUsed = make([]bool, len(w.mol.Bonds))
	w.closures = make([][]ringClosure, n)
	w.nextLabel = 1

	// First pass: spanning-tree DFS in rank order to place ring-closure
	// labels on both endpoints of every back edge.
	marked := make([]bool, n)
	for {
		start := w.lowestUnvisited(marked)
		if start < 0 {
			break
		}
		w.markComponent(start, marked)
	}

	// Second pass: emit components, '.'-separated, in rank order.
	for {
		start := w.lowestUnvisited(w.visited)
		if start < 0 {
			break
		}
		if w.sb.Len() > 0 {
			w.sb.WriteByte('.')
		}
		w.emit(start, -1)
	}
	return w.sb.String()
}

func (w *smilesWriter) lowestUnvisited(seen []bool) int {
	best := -1
	for i := range seen {
		if !seen[i] && (best < 0 || w.ranks[i] < w.ranks[best]) {
			best = i
		}
	}
	return best
}

// orderedBonds returns atom idx's incident bonds with the inbound bond
// removed, sorted by neighbour rank.
func (w *smilesWriter) orderedBonds(idx, fromBond int) []int {
	out := make([]int, 0, len(w.mol.adj[idx]))
	for _, bi := range w.mol.adj[idx] {
		if bi != fromBond {
			out = append(out, bi)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return w.ranks[w.mol.Bonds[out[a]].Other(idx)] < w.ranks[w.mol.Bonds[out[b]].Other(idx)]
	})
	return out
}

// markComponent discovers back edges and assigns ring-closure labels.
func (w *smilesWriter) markComponent(start int, marked []bool) {
	marked[start] = true

	var visit func(atom, fromBond int)
	visit = func(atom, fromBond int) {
		for _, bi := range w.orderedBonds(atom, fromBond) {
			if w.bondUsed[bi] {
				continue
			}
			next := w.mol.Bonds[bi].Other(atom)
			if marked[next] {
				// Back edge: assign the next label to both endpoints.
				w.bondUsed[bi] = true
				label := w.nextLabel
				w.nextLabel++
				w.closures[atom] = append(w.closures[atom], ringClosure{label: label, bond: bi})
				w.closures[next] = append(w.closures[next], ringClosure{label: label, bond: bi})
				continue
			}
			marked[next] = true
			w.bondUsed[bi] = true
			visit(next, bi)
		}
	}
	visit(start, -1)

	// Reset bond usage for the emission pass; closure records persist.
	for i := range w.bondUsed {
		w.bondUsed[i] = false
	}
	for _, c := range w.closuresAll() {
		w.bondUsed[c] = true
	}
}

// closuresAll lists every bond index consumed by a ring closure.
func (w *smilesWriter) closuresAll() []int {
	seen := map[int]bool{}
	var out []int
	for _, list := range w.closures {
		for _, c := range list {
			if !seen[c.bond] {
				seen[c.bond] = true
				out = append(out, c.bond)
			}
		}
	}
	return out
}

// emit walks the spanning tree writing atoms, branches, and closures.
func (w *smilesWriter) emit(atom, fromBond int) {
	w.visited[atom] = true
	w.writeAtom(atom)

	for _, c := range w.closures[atom] {
		w.writeBondSymbol(c.bond, atom)
		w.writeRingLabel(c.label)
	}

	bonds := []int{}
	for _, bi := range w.orderedBonds(atom, fromBond) {
		if !w.bondUsed[bi] && !w.visited[w.mol.Bonds[bi].Other(atom)] {
			bonds = append(bonds, bi)
		}
	}
	for i, bi := range bonds {
		w.bondUsed[bi] = true
		next := w.mol.Bonds[bi].Other(atom)
		last := i == len(bonds)-1
		if !last {
			w.sb.WriteByte('(')
		}
		w.writeBondSymbol(bi, atom)
		w.emit(next, bi)
		if !last {
			w.sb.WriteByte(')')
		}
	}
}

// writeBondSymbol writes the bond character preceding an atom or ring label.
// Single and aromatic bonds are implicit, except an explicit '-' between two
// aromatic atoms that are not aromatically bonded (biphenyl linkage).
func (w *smilesWriter) writeBondSymbol(bi, fromAtom int) {
	b := w.mol.Bonds[bi]
	switch {
	case b.Order == 2:
		w.sb.WriteByte('=')
	case b.Order == 3:
		w.sb.WriteByte('#')
	case b.Order == 1 && !b.Aromatic &&
		w.mol.Atoms[b.A].Aromatic && w.mol.Atoms[b.B].Aromatic:
		w.sb.WriteByte('-')
	}
}

func (w *smilesWriter) writeRingLabel(label int) {
	if label < 10 {
		w.sb.WriteString(strconv.Itoa(label))
		return
	}
	w.sb.WriteByte('%')
	w.sb.WriteString(strconv.Itoa(label))
}

// writeAtom writes one atom, bracketed when it carries information the
// organic-subset shorthand cannot express.
func (w *smilesWriter) writeAtom(idx int) {
	a := w.mol.Atoms[idx]
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(normalizeSymbol(sym))
	} else {
		sym = normalizeSymbol(sym)
	}

	needBracket := a.Charge != 0 || a.Isotope != 0 || !organicWritable(a)
	if !needBracket && a.explicitH {
		// A bracket atom whose hydrogen count differs from what the
		// organic-subset rules would infer must stay bracketed.
		needBracket = w.inferredHCount(idx) != a.HCount
	}

	if !needBracket {
		w.sb.WriteString(sym)
		return
	}

	w.sb.WriteByte('[')
	if a.Isotope != 0 {
		w.sb.WriteString(strconv.Itoa(a.Isotope))
	}
	w.sb.WriteString(sym)
	if a.HCount == 1 {
		w.sb.WriteByte('H')
	} else if a.HCount > 1 {
		w.sb.WriteByte('H')
		w.sb.WriteString(strconv.Itoa(a.HCount))
	}
	if a.Charge > 0 {
		w.sb.WriteByte('+')
		if a.Charge > 1 {
			w.sb.WriteString(strconv.Itoa(a.Charge))
		}
	} else if a.Charge < 0 {
		w.sb.WriteByte('-')
		if a.Charge < -1 {
			w.sb.WriteString(strconv.Itoa(-a.Charge))
		}
	}
	w.sb.WriteByte(']')
}

// organicWritable reports whether the atom's element may appear unbracketed.
func organicWritable(a Atom) bool {
	if a.Aromatic {
		return aromaticSubset[strings.ToLower(normalizeSymbol(a.Symbol))]
	}
	return organicSubset[normalizeSymbol(a.Symbol)]
}

// inferredHCount computes the hydrogen count the organic-subset valence
// rules would assign to atom idx if it were written without brackets.
func (w *smilesWriter) inferredHCount(idx int) int {
	a := w.mol.Atoms[idx]
	valence, ok := defaultValence[normalizeSymbol(a.Symbol)]
	if !ok {
		return 0
	}
	used := w.mol.bondOrderSum(idx)
	if a.Aromatic {
		used++
	}
	h := valence - used
	if h < 0 {
		h = 0
	}
	return h
}
