package products

import (
	"context"
	"fmt"

	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

// Service exposes the read-only catalog surface.
type Service interface {
	List(ctx context.Context, filter Filter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) []string
	Materials(ctx context.Context) []string
}

type service struct {
	catalog []Product
	byID    map[string]Product
	logg    *logger.Logger
}

// NewService builds a catalog service over a fixed assortment.
func NewService(catalog []Product, logg *logger.Logger) (Service, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("catalog is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}

	byID := make(map[string]Product, len(catalog))
	for _, p := range catalog {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %q has no id", p.Name)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", p.ID)
		}
		byID[p.ID] = p
	}

	return &service{catalog: catalog, byID: byID, logg: logg}, nil
}

func (s *service) List(_ context.Context, filter Filter) ([]Product, error) {
	if filter.MinPrice < 0 || filter.MaxPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price bounds must not be negative")
	}
	if filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min price exceeds max price")
	}
	return filter.Apply(s.catalog), nil
}

func (s *service) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": id})
	}
	return &p, nil
}

func (s *service) Categories(_ context.Context) []string {
	return distinct(s.catalog, func(p Product) string { return p.Category })
}

func (s *service) Materials(_ context.Context) []string {
	return distinct(s.catalog, func(p Product) string { return p.Material })
}

func distinct(catalog []Product, pick func(Product) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range catalog {
		v := pick(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
