package extension

import (
	"sort"
	"strings"
)

// Compound extensions that are matched as a unit instead of being split on
// the final dot
var compounds = map[string]struct{}{
	"nii.gz":       {},
	"gipl.gz":      {},
	"mnc.gz":       {},
	"mgh.gz":       {},
	"iwi.cbor":     {},
	"iwm.cbor":     {},
	"iwi.cbor.zst": {},
	"iwm.cbor.zst": {},
}

// Resolve returns the lowercase extension token for filename. Known compound
// extensions like "nii.gz" are returned whole, anything else collapses to the
// final dot separated segment. A filename without a dot is returned
// lowercased in full.
func Resolve(filename string) (token string) {
	var (
		parts = strings.Split(strings.ToLower(filename), ".")
		n     = len(parts)
	)
	// A compound must leave at least one stem segment in front of it
	if n >= 4 {
		if c := strings.Join(parts[n-3:], "."); IsCompound(c) {
			return c
		}
	}
	if n >= 3 {
		if c := parts[n-2] + "." + parts[n-1]; IsCompound(c) {
			return c
		}
	}
	return parts[n-1]
}

// IsCompound reports whether token is one of the known multi segment tokens
func IsCompound(token string) bool {
	_, ok := compounds[token]
	return ok
}

// Compounds returns the known compound tokens in sorted order
func Compounds() (tokens []string) {
	tokens = make([]string, 0, len(compounds))
	for c := range compounds {
		tokens = append(tokens, c)
	}
	sort.Strings(tokens)
	return
}
