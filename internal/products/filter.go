package products

import (
	"sort"
	"strings"

	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
)

// SortOption orders a filtered catalog view.
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortNewest    SortOption = "newest"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortDiscount  SortOption = "discount"
)

func (s SortOption) IsValid() bool {
	switch s {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortDiscount:
		return true
	}
	return false
}

// ParseSortOption maps a query value onto a SortOption. Empty input
// falls back to the featured ordering.
func ParseSortOption(raw string) (SortOption, error) {
	if strings.TrimSpace(raw) == "" {
		return SortFeatured, nil
	}
	s := SortOption(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid sort option").
			WithDetails(map[string]any{"sort": raw})
	}
	return s, nil
}

// Filter narrows the catalog. Zero values mean "no constraint";
// MaxPrice of 0 is treated as unbounded. Query matches name,
// description and category case-insensitively.
type Filter struct {
	Query      string
	Categories []string
	Materials  []string
	MinPrice   int64
	MaxPrice   int64
	Sort       SortOption
}

func (f Filter) query() string {
	return strings.ToLower(strings.TrimSpace(f.Query))
}

func (f Filter) matches(p Product) bool {
	if q := f.query(); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}
	if len(f.Materials) > 0 && !containsFold(f.Materials, p.Material) {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}

// Apply filters and sorts a catalog snapshot without mutating the input.
func (f Filter) Apply(catalog []Product) []Product {
	out := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if f.matches(p) {
			out = append(out, p)
		}
	}

	sortOpt := f.Sort
	if sortOpt == "" {
		sortOpt = SortFeatured
	}

	switch sortOpt {
	case SortFeatured:
		// With a search term this is relevance: name matches rank ahead
		// of description or category matches. Featured first otherwise.
		if q := f.query(); q != "" {
			sort.SliceStable(out, func(i, j int) bool {
				im := strings.Contains(strings.ToLower(out[i].Name), q)
				jm := strings.Contains(strings.ToLower(out[j].Name), q)
				if im != jm {
					return im
				}
				return out[i].Featured && !out[j].Featured
			})
			break
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Featured && !out[j].Featured
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case SortDiscount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Discount > out[j].Discount
		})
	}

	return out
}
