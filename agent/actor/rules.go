package actor

import (
	"strings"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
)

// Heuristic text rules. These run on the raw user text and act as a
// deterministic safety net against planner misclassification, so each
// predicate stays independently testable.

var removalKeywords = []string{"remove", "delete", "take out"}

var setQuantityPhrases = []string{"set", "only want", "just want"}

// RemovalRequested reports whether the text asks to take something out of
// the cart.
func RemovalRequested(text string) bool {
	return containsAny(text, removalKeywords)
}

// SetQuantityRequested reports whether the text asks for an exact
// quantity rather than an increment.
func SetQuantityRequested(text string) bool {
	return containsAny(text, setQuantityPhrases)
}

// MentionedProduct scans the text for a literal catalog product name,
// case-insensitively. First catalog entry mentioned wins.
func MentionedProduct(products []catalogx.Product, text string) (catalogx.Product, bool) {
	lowered := strings.ToLower(text)
	for _, p := range products {
		if strings.Contains(lowered, strings.ToLower(p.Name)) {
			return p, true
		}
	}
	return catalogx.Product{}, false
}

func containsAny(text string, keywords []string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
