package actor

import (
	"testing"

	catalogx "github.com/velourlabs/scentbot/agent/catalog"
)

func TestRemovalRequested(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]bool{
		"please remove the oud":         true,
		"DELETE rose noir from my cart": true,
		"take out the citrus one":       true,
		"add oud royale":                false,
		"":                              false,
	} {
		if got := RemovalRequested(text); got != want {
			t.Fatalf("RemovalRequested(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestSetQuantityRequested(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]bool{
		"set the oud to 2 bottles":  true,
		"I only want one":           true,
		"i just want 3 of those":    true,
		"add two more rose noir":    false,
		"what is the return policy": false,
	} {
		if got := SetQuantityRequested(text); got != want {
			t.Fatalf("SetQuantityRequested(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestMentionedProduct(t *testing.T) {
	t.Parallel()

	products := catalogx.Default("Velour Fragrances", "PKR").Products()

	p, ok := MentionedProduct(products, "remove the ROSE NOIR please")
	if !ok || p.ID != "rs1" {
		t.Fatalf("MentionedProduct() = %#v, %v", p, ok)
	}

	if _, ok := MentionedProduct(products, "remove whatever is in there"); ok {
		t.Fatal("expected no product mention")
	}
}
