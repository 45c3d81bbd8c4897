// Package catalog derives the storefront's product views: price filtering,
// text search, sorting, and the bundled fallback catalog.
package catalog

import (
	"sort"
	"strings"

	"storefront-service/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a product view.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a query value to a SortKey. Unknown values sort by
// recency, which keeps the upstream order.
func ParseSortKey(raw string) SortKey {
	switch k := SortKey(strings.TrimSpace(raw)); k {
	case SortName, SortPriceLow, SortPriceHigh:
		return k
	default:
		return SortNewest
	}
}

const (
	DefaultMinPrice int64 = 1000
	DefaultMaxPrice int64 = 50000
)

// PriceRange is an inclusive [Min, Max] bound on final prices.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// DefaultPriceRange is the range the product page opens with.
func DefaultPriceRange() PriceRange {
	return PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}
}

// WithMin moves the lower bound, never past Max.
func (r PriceRange) WithMin(v int64) PriceRange {
	r.Min = min(v, r.Max)
	return r
}

// WithMax moves the upper bound, never below Min.
func (r PriceRange) WithMax(v int64) PriceRange {
	r.Max = max(v, r.Min)
	return r
}

// ResolvePriceRange builds the range for explicitly requested bounds; a nil
// bound keeps its default. When the result is inverted, a pair of explicit
// bounds is swapped, and a single explicit bound drags the default one along.
func ResolvePriceRange(minPrice, maxPrice *int64) PriceRange {
	r := DefaultPriceRange()
	if minPrice != nil {
		r.Min = *minPrice
	}
	if maxPrice != nil {
		r.Max = *maxPrice
	}
	if r.Min > r.Max {
		switch {
		case minPrice != nil && maxPrice != nil:
			r.Min, r.Max = r.Max, r.Min
		case minPrice != nil:
			r.Max = r.Min
		default:
			r.Min = r.Max
		}
	}
	return r
}

// Contains reports whether price lies within the range.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Filters is the shopper-controlled part of a product view.
type Filters struct {
	PriceRange PriceRange
}

// DefaultPriceRangeFilters returns Filters holding the default range.
func DefaultPriceRangeFilters() Filters {
	return Filters{PriceRange: DefaultPriceRange()}
}

// DeriveView filters products by final price, then by query, then sorts
// them. The query is matched lowercased but untrimmed, so surrounding
// spaces are significant. The input slice is not modified.
func DeriveView(products []models.Product, filters Filters, query string, key SortKey) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filters.PriceRange.Contains(p.FinalPrice()) {
			out = append(out, p)
		}
	}

	if q := strings.ToLower(query); q != "" {
		matched := out[:0]
		for _, p := range out {
			if matchesQuery(p, q) {
				matched = append(matched, p)
			}
		}
		out = matched
	}

	switch key {
	case SortName:
		col := collate.New(language.French, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FinalPrice() < out[j].FinalPrice()
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FinalPrice() > out[j].FinalPrice()
		})
	}
	return out
}

func matchesQuery(p models.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Category), lowerQuery)
}

// FindByID returns the product with id.
func FindByID(products []models.Product, id int64) (models.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// NewArrivals keeps products flagged as new, in input order.
func NewArrivals(products []models.Product) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range products {
		if p.IsNew {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products sharing p's category, p excluded.
func Related(products []models.Product, p models.Product, limit int) []models.Product {
	out := make([]models.Product, 0, limit)
	for _, candidate := range products {
		if len(out) == limit {
			break
		}
		if candidate.Category == p.Category && candidate.ID != p.ID {
			out = append(out, candidate)
		}
	}
	return out
}
