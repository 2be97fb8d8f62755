package cart

import (
	"strings"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
)

// matcher reports whether a catalog product satisfies the user-supplied
// reference. Resolution tries each matcher over the whole catalog in
// order; the first hit wins.
type matcher func(p catalogx.Product, ref string) bool

var resolutionOrder = []matcher{
	matchExactID,
	matchExactName,
	matchNameSubstring,
}

func matchExactID(p catalogx.Product, ref string) bool {
	return strings.EqualFold(p.ID, ref)
}

func matchExactName(p catalogx.Product, ref string) bool {
	return strings.EqualFold(p.Name, ref)
}

// matchNameSubstring matches in both directions: "oud" hits "Oud Royale"
// and "oud royale 50ml" hits it too. Ambiguity between products sharing a
// substring resolves to the first catalog entry.
func matchNameSubstring(p catalogx.Product, ref string) bool {
	name := strings.ToLower(p.Name)
	ref = strings.ToLower(ref)
	return strings.Contains(name, ref) || strings.Contains(ref, name)
}

// Resolve finds the catalog product the reference points at. The
// reference may be a product id, an exact name, or a partial name.
func Resolve(products []catalogx.Product, ref string) (catalogx.Product, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return catalogx.Product{}, false
	}
	for _, match := range resolutionOrder {
		for _, p := range products {
			if match(p, ref) {
				return p, true
			}
		}
	}
	return catalogx.Product{}, false
}
