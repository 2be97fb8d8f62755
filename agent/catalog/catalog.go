package catalog

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// Product is immutable for the process lifetime. There are no
// create/update/delete operations on the catalog.
type Product struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Price     int      `json:"price"`
	Currency  string   `json:"currency"`
	Gender    Gender   `json:"gender"`
	Occasions []string `json:"occasion"`
	Notes     []string `json:"notes"`
	Strength  string   `json:"strength"`
	Stock     int      `json:"stock,omitempty"`
}

func (p Product) FormattedPrice() string {
	return fmt.Sprintf("%s %d", p.Currency, p.Price)
}

// Catalog is the fixed, read-only set of purchasable products.
type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	return &Catalog{products: append([]Product(nil), products...)}
}

// Default builds the stock fragrance catalog for the given brand.
func Default(brand, currency string) *Catalog {
	return New([]Product{
		{
			ID:        "ou1",
			Name:      "Oud Royale",
			Brand:     brand,
			Price:     4800,
			Currency:  currency,
			Gender:    GenderUnisex,
			Occasions: []string{"evening", "formal"},
			Notes:     []string{"oud", "amber", "spice"},
			Strength:  "EDP",
			Stock:     12,
		},
		{
			ID:        "rs1",
			Name:      "Rose Noir",
			Brand:     brand,
			Price:     3900,
			Currency:  currency,
			Gender:    GenderFemale,
			Occasions: []string{"date", "evening"},
			Notes:     []string{"rose", "patchouli", "musk"},
			Strength:  "EDT",
			Stock:     7,
		},
		{
			ID:        "cy1",
			Name:      "Citrus Yuzu",
			Brand:     brand,
			Price:     3200,
			Currency:  currency,
			Gender:    GenderMale,
			Occasions: []string{"daytime", "office", "summer"},
			Notes:     []string{"yuzu", "citrus", "green"},
			Strength:  "EDT",
			Stock:     20,
		},
	})
}

// Products returns the catalog in its fixed order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// Lines renders one human-readable line per product, used both for prompt
// embedding and for enriching tool results.
func (c *Catalog) Lines() []string {
	lines := make([]string, 0, len(c.products))
	for _, p := range c.products {
		lines = append(lines, fmt.Sprintf(
			"%s (%s): %s, %s, %s, occasions: %s, notes: %s, stock: %d",
			p.Name, p.ID, p.FormattedPrice(), p.Strength, p.Gender,
			strings.Join(p.Occasions, "/"), strings.Join(p.Notes, "/"), p.Stock,
		))
	}
	return lines
}

// PriceTable maps product name to its exact formatted price so the model
// cannot invent prices.
func (c *Catalog) PriceTable() map[string]string {
	table := make(map[string]string, len(c.products))
	for _, p := range c.products {
		table[p.Name] = p.FormattedPrice()
	}
	return table
}

// Criteria filters the catalog. All supplied fields are conjunctive;
// zero-valued fields impose no constraint.
type Criteria struct {
	MaxPrice *int     `json:"max_price,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Occasion string   `json:"occasion,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// Search returns the products satisfying all supplied constraints, in
// catalog order. An empty criteria returns the full catalog.
func (c *Catalog) Search(crit Criteria) []Product {
	results := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if crit.MaxPrice != nil && p.Price > *crit.MaxPrice {
			continue
		}
		if crit.Gender != "" && !strings.EqualFold(string(p.Gender), crit.Gender) {
			continue
		}
		if crit.Occasion != "" && !matchesOccasion(p.Occasions, crit.Occasion) {
			continue
		}
		if len(crit.Notes) > 0 && !matchesAnyNote(p.Notes, crit.Notes) {
			continue
		}
		results = append(results, p)
	}
	return results
}

func matchesOccasion(occasions []string, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	for _, o := range occasions {
		if strings.Contains(strings.ToLower(o), want) {
			return true
		}
	}
	return false
}

func matchesAnyNote(notes []string, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, n := range notes {
			if strings.ToLower(n) == w {
				return true
			}
		}
	}
	return false
}
