package identity

import "strings"

// knownCompound is one row of the curated table of laboratory staples.
type knownCompound struct {
	name           string
	registryNumber string
}

// knownCompounds maps descriptors of extremely common laboratory compounds
// to their names and registry numbers.  Keys are written in common SMILES
// form; PatternSource canonicalizes them at construction so any equivalent
// spelling of the same structure matches.
var knownCompounds = map[string]knownCompound{
	"O":                     {"Water", "7732-18-5"},
	"CO":                    {"Methanol", "67-56-1"},
	"CCO":                   {"Ethanol", "64-17-5"},
	"CC(C)O":                {"Isopropanol", "67-63-0"},
	"CC(C)=O":               {"Acetone", "67-64-1"},
	"CC(=O)O":               {"Acetic acid", "64-19-7"},
	"CCOC(C)=O":             {"Ethyl acetate", "141-78-6"},
	"C1CCOC1":               {"Tetrahydrofuran", "109-99-9"},
	"CS(C)=O":               {"Dimethyl sulfoxide", "67-68-5"},
	"ClCCl":                 {"Dichloromethane", "75-09-2"},
	"ClC(Cl)Cl":             {"Chloroform", "67-66-3"},
	"CCCCCC":                {"n-Hexane", "110-54-3"},
	"C1CCCCC1":              {"Cyclohexane", "110-82-7"},
	"c1ccccc1":              {"Benzene", "71-43-2"},
	"Cc1ccccc1":             {"Toluene", "108-88-3"},
	"Oc1ccccc1":             {"Phenol", "108-95-2"},
	"c1ccc2ccccc2c1":        {"Naphthalene", "91-20-3"},
	"NC(N)=O":               {"Urea", "57-13-6"},
	"CC(=O)Oc1ccccc1C(=O)O": {"Aspirin", "50-78-2"},
	"CC(=O)Nc1ccc(O)cc1":    {"Paracetamol", "103-90-2"},
	"[Na+].[Cl-]":           {"Sodium chloride", "7647-14-5"},
}

// functionalGroup is one ordered signature of the name guesser.  Signatures
// run from most specific to least specific; the first match wins.
type functionalGroup struct {
	signature string
	element   bool // match an element token instead of a raw substring
	name      string
}

var functionalGroups = []functionalGroup{
	{signature: "S(=O)(=O)", name: "sulfonyl compound"},
	{signature: "C(=O)N", name: "amide"},
	{signature: "C(=O)O", name: "carboxylic acid or ester"},
	{signature: "C#N", name: "nitrile"},
	{signature: "C=O", name: "carbonyl compound"},
	{signature: "N", element: true, name: "amine or nitrogen compound"},
	{signature: "c", name: "aromatic compound"},
	{signature: "O", element: true, name: "oxygenated compound"},
	{signature: "S", element: true, name: "sulfur compound"},
	{signature: "C", element: true, name: "hydrocarbon"},
}

// GuessName maps a descriptor to a human-readable name: specific compounds
// first, then functional-group signatures.  It returns false when no
// pattern applies.
func GuessName(descriptor string) (string, bool) {
	if c, ok := knownCompounds[descriptor]; ok {
		return c.name, true
	}
	for _, g := range functionalGroups {
		if g.element {
			if hasElement(descriptor, g.signature) {
				return g.name, true
			}
			continue
		}
		if strings.Contains(descriptor, g.signature) {
			return g.name, true
		}
	}
	return "", false
}

// twoLetterSymbols are the element tokens that must not be confused with
// their one-letter prefixes during element scanning (Na vs N, Cl vs C).
var twoLetterSymbols = []string{"Cl", "Br", "Na", "Ca", "Si", "Se", "Sn", "Nb", "Ni"}

// hasElement reports whether descriptor contains element sym as a whole
// token, aromatic lowercase form included.
func hasElement(descriptor, sym string) bool {
	lower := strings.ToLower(sym)
	i := 0
	for i < len(descriptor) {
		matchedTwo := false
		for _, two := range twoLetterSymbols {
			if strings.HasPrefix(descriptor[i:], two) {
				if two == sym {
					return true
				}
				i += 2
				matchedTwo = true
				break
			}
		}
		if matchedTwo {
			continue
		}
		tok := descriptor[i : i+1]
		if tok == sym || tok == lower {
			return true
		}
		i++
	}
	return false
}
