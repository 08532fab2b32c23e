package structure

import (
	"fmt"
	"strings"

	"github.com/turtacn/ChemVault/pkg/errors"
)

// twoLetterOrganic lists the organic-subset symbols that span two characters
// and must be matched before their one-letter prefixes.
var twoLetterOrganic = []string{"Cl", "Br"}

// organicSubset lists the atoms that may appear outside brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true, "*": true,
}

// aromaticSubset lists the lowercase aromatic atoms allowed outside brackets.
var aromaticSubset = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// bracketSymbols lists every element symbol accepted inside brackets, plus
// the aromatic forms that only occur bracketed (se, as).
var bracketAromatic = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
	"se": true, "as": true,
}

// ringRef records a pending (half-open) ring-closure bond.
type ringRef struct {
	atom  int
	order int // 0 = unspecified
}

func invalidDescriptor(reason, descriptor string) error {
	return errors.New(errors.ErrCodeStructureInvalid, reason).
		WithDetail(fmt.Sprintf("descriptor=%s", descriptor))
}

// ParseSMILES builds a Mol from a SMILES descriptor.  The input must already
// be cleaned (see CleanDescriptor); syntactic problems return an AppError
// with ErrCodeStructureInvalid.
func ParseSMILES(s string) (*Mol, error) {
	if s == "" {
		return nil, errors.New(errors.ErrCodeStructureEmpty, "descriptor is empty")
	}

	mol := &Mol{}
	var branchStack []int
	prev := -1
	pendingOrder := 0 // 0 = unspecified, else 1..3
	pendingAromatic := false
	rings := make(map[int]ringRef)

	// connect attaches atom `to` to `prev` honouring any pending bond symbol.
	connect := func(from, to, order int, aromatic bool) {
		if order == 0 {
			if mol.Atoms[from].Aromatic && mol.Atoms[to].Aromatic {
				order, aromatic = 1, true
			} else {
				order = 1
			}
		}
		mol.addBond(from, to, order, aromatic)
	}

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, invalidDescriptor("branch opened before any atom", s)
			}
			branchStack = append(branchStack, prev)
			i++

		case c == ')':
			if len(branchStack) == 0 {
				return nil, invalidDescriptor("unmatched closing parenthesis", s)
			}
			prev = branchStack[len(branchStack)-1]
			branchStack = branchStack[:len(branchStack)-1]
			i++

		case c == '-' || c == '/' || c == '\\':
			pendingOrder = 1
			i++
		case c == '=':
			pendingOrder = 2
			i++
		case c == '#':
			pendingOrder = 3
			i++
		case c == ':':
			pendingOrder = 1
			pendingAromatic = true
			i++

		case c == '.':
			prev = -1
			pendingOrder = 0
			pendingAromatic = false
			i++

		case c >= '0' && c <= '9', c == '%':
			num, width, err := ringNumber(s, i)
			if err != nil {
				return nil, invalidDescriptor(err.Error(), s)
			}
			if prev < 0 {
				return nil, invalidDescriptor("ring bond before any atom", s)
			}
			if ref, open := rings[num]; open {
				order := ref.order
				if pendingOrder != 0 {
					if order != 0 && order != pendingOrder {
						return nil, invalidDescriptor("conflicting ring-bond orders", s)
					}
					order = pendingOrder
				}
				aromatic := pendingAromatic
				if ref.atom == prev {
					return nil, invalidDescriptor("ring bond closes onto its own atom", s)
				}
				connect(ref.atom, prev, order, aromatic)
				delete(rings, num)
			} else {
				rings[num] = ringRef{atom: prev, order: pendingOrder}
			}
			pendingOrder = 0
			pendingAromatic = false
			i += width

		case c == '[':
			atom, width, err := parseBracketAtom(s[i:])
			if err != nil {
				return nil, invalidDescriptor(err.Error(), s)
			}
			idx := mol.addAtom(atom)
			if prev >= 0 {
				connect(prev, idx, pendingOrder, pendingAromatic)
			}
			prev = idx
			pendingOrder = 0
			pendingAromatic = false
			i += width

		default:
			sym, width := organicSymbol(s, i)
			if sym == "" {
				return nil, invalidDescriptor(fmt.Sprintf("unexpected character %q", c), s)
			}
			a := Atom{Symbol: sym, HCount: -1}
			if aromaticSubset[sym] {
				a.Aromatic = true
			}
			idx := mol.addAtom(a)
			if prev >= 0 {
				connect(prev, idx, pendingOrder, pendingAromatic)
			}
			prev = idx
			pendingOrder = 0
			pendingAromatic = false
			i += width
		}
	}

	if len(branchStack) != 0 {
		return nil, invalidDescriptor("unclosed branch parenthesis", s)
	}
	if len(rings) != 0 {
		return nil, invalidDescriptor("unclosed ring bond", s)
	}
	if pendingOrder != 0 {
		return nil, invalidDescriptor("dangling bond symbol", s)
	}
	if len(mol.Atoms) == 0 {
		return nil, invalidDescriptor("descriptor contains no atoms", s)
	}

	mol.assignImplicitHydrogens()
	return mol, nil
}

// organicSymbol matches an organic-subset or aromatic-subset symbol at
// position i, two-letter symbols first.  Returns "" when nothing matches.
func organicSymbol(s string, i int) (string, int) {
	for _, sym := range twoLetterOrganic {
		if strings.HasPrefix(s[i:], sym) {
			return sym, 2
		}
	}
	one := s[i : i+1]
	if organicSubset[one] || aromaticSubset[one] {
		return one, 1
	}
	return "", 0
}

// ringNumber reads a one-digit or %nn ring-closure label at position i and
// returns the label value and consumed width.
func ringNumber(s string, i int) (int, int, error) {
	if s[i] != '%' {
		return int(s[i] - '0'), 1, nil
	}
	if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
		return 0, 0, fmt.Errorf("%% ring label requires two digits")
	}
	return int(s[i+1]-'0')*10 + int(s[i+2]-'0'), 3, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parseBracketAtom parses a bracketed atom expression starting at s[0] == '['
// and returns the atom plus the number of bytes consumed (brackets included).
// Chirality markers and atom-class labels are accepted and discarded.
func parseBracketAtom(s string) (Atom, int, error) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return Atom{}, 0, fmt.Errorf("unclosed atom bracket")
	}
	body := s[1:end]
	if body == "" {
		return Atom{}, 0, fmt.Errorf("empty atom bracket")
	}

	atom := Atom{explicitH: true}
	j := 0

	// Isotope prefix.
	for j < len(body) && isDigit(body[j]) {
		atom.Isotope = atom.Isotope*10 + int(body[j]-'0')
		j++
	}
	if j >= len(body) {
		return Atom{}, 0, fmt.Errorf("atom bracket missing element symbol")
	}

	// Element symbol: "*", a two-letter bracket aromatic, an uppercase letter
	// optionally followed by lowercase, or a lowercase aromatic atom.
	switch {
	case body[j] == '*':
		atom.Symbol = "*"
		j++
	case j+1 < len(body) && bracketAromatic[body[j:j+2]]:
		atom.Symbol = body[j : j+2]
		atom.Aromatic = true
		j += 2
	case body[j] >= 'A' && body[j] <= 'Z':
		sym := body[j : j+1]
		j++
		if j < len(body) && body[j] >= 'a' && body[j] <= 'z' && body[j] != 'h' {
			two := sym + body[j:j+1]
			if _, known := atomicWeight[two]; known {
				sym = two
				j++
			}
		}
		atom.Symbol = sym
	case bracketAromatic[body[j:j+1]]:
		atom.Symbol = body[j : j+1]
		atom.Aromatic = true
		j++
	default:
		return Atom{}, 0, fmt.Errorf("invalid element symbol in bracket atom")
	}

	// Chirality markers.
	for j < len(body) && body[j] == '@' {
		j++
	}
	if j < len(body) && (strings.HasPrefix(body[j:], "TH") || strings.HasPrefix(body[j:], "AL")) {
		j += 2 // extended chirality class, ignored
	}

	// Hydrogen count.
	if j < len(body) && body[j] == 'H' {
		j++
		atom.HCount = 1
		if j < len(body) && isDigit(body[j]) {
			atom.HCount = int(body[j] - '0')
			j++
		}
	}

	// Charge: "+", "-", repeated, or with an explicit magnitude.
	if j < len(body) && (body[j] == '+' || body[j] == '-') {
		sign := 1
		if body[j] == '-' {
			sign = -1
		}
		mark := body[j]
		count := 0
		for j < len(body) && body[j] == mark {
			count++
			j++
		}
		if count == 1 && j < len(body) && isDigit(body[j]) {
			count = int(body[j] - '0')
			j++
		}
		atom.Charge = sign * count
	}

	// Atom-class label.
	if j < len(body) && body[j] == ':' {
		j++
		if j >= len(body) || !isDigit(body[j]) {
			return Atom{}, 0, fmt.Errorf("atom-class label requires digits")
		}
		for j < len(body) && isDigit(body[j]) {
			j++
		}
	}

	if j != len(body) {
		return Atom{}, 0, fmt.Errorf("trailing characters in atom bracket")
	}
	return atom, end + 1, nil
}
