package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/api/validators"
	productsvc "github.com/ecocraftid/ecocraft-backend/internal/products"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

// ProductsList returns the filtered, sorted catalog view.
//
// Query parameters: q is a free-text search over name, description and
// category, categories and materials are comma-separated,
// min_price/max_price are whole rupiah, sort is one of
// featured|newest|price-asc|price-desc|discount. With q present the
// featured ordering becomes relevance (name matches first).
func ProductsList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		minPrice, err := validators.ParseQueryInt64(r, "min_price", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryInt64(r, "max_price", 0)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sortOpt, err := productsvc.ParseSortOption(r.URL.Query().Get("sort"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := productsvc.Filter{
			Query:      r.URL.Query().Get("q"),
			Categories: validators.ParseQueryList(r, "categories"),
			Materials:  validators.ParseQueryList(r, "materials"),
			MinPrice:   minPrice,
			MaxPrice:   maxPrice,
			Sort:       sortOpt,
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products": list,
			"count":    len(list),
		})
	}
}

func ProductsGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		product, err := svc.GetByID(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductsFacets lists the distinct filterable values.
func ProductsFacets(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "products service unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"categories": svc.Categories(r.Context()),
			"materials":  svc.Materials(r.Context()),
		})
	}
}
