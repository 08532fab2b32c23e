// Package identity implements the local links of the resolution chain: the
// registry-number grammar, the curated pattern-guess tables, and the
// deterministic synthetic fallback that terminates every resolution.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
)

// registryNumberPattern is the registry-number grammar: a 2-7 digit prefix,
// a 2 digit middle segment, and a single check digit.  It gates externally
// retrieved numbers and synthetic ones alike.
var registryNumberPattern = regexp.MustCompile(`^\d{2,7}-\d{2}-\d$`)

// ValidRegistryNumber reports whether s satisfies the registry-number
// grammar.
func ValidRegistryNumber(s string) bool {
	return registryNumberPattern.MatchString(s)
}

// SynthesizeRegistryNumber derives a deterministic pseudo registry number
// from the descriptor.  The three segments come from fixed slices of a
// SHA-256 digest, so the same structure always maps to the same number
// across calls and restarts.  Different structures may collide on a shared
// hash prefix; the number is a placeholder, not an authoritative identity.
func SynthesizeRegistryNumber(descriptor string) string {
	sum := sha256.Sum256([]byte(descriptor))
	digest := hex.EncodeToString(sum[:])

	first, _ := strconv.ParseInt(digest[:6], 16, 64)
	second, _ := strconv.ParseInt(digest[6:8], 16, 64)
	third, _ := strconv.ParseInt(digest[8:9], 16, 64)

	return fmt.Sprintf("%06d-%02d-%d", first%1000000, second%100, third%10)
}
