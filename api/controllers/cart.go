package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecocraftid/ecocraft-backend/api/middleware"
	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/api/validators"
	cartsvc "github.com/ecocraftid/ecocraft-backend/internal/cart"
	productsvc "github.com/ecocraftid/ecocraft-backend/internal/products"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

type cartStateResponse struct {
	Lines      []cartsvc.Line `json:"lines"`
	TotalPrice int64          `json:"total_price"`
	ItemCount  int            `json:"item_count"`
}

func newCartStateResponse(state cartsvc.State) cartStateResponse {
	return cartStateResponse{
		Lines:      state.Lines,
		TotalPrice: state.TotalPrice,
		ItemCount:  state.ItemCount(),
	}
}

func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.Get(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// CartAddItem resolves the product against the catalog and adds one unit.
func CartAddItem(svc cartsvc.Service, catalog productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalog.GetByID(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.AddItem(r.Context(), clientID, cartsvc.Item{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Image:     product.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.RemoveItem(r.Context(), clientID, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.UpdateQuantity(r.Context(), clientID, chi.URLParam(r, "productId"), payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

func CartIncrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.Increment(r.Context(), clientID, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

func CartDecrement(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := svc.Decrement(r.Context(), clientID, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(state))
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		if err := svc.Clear(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartStateResponse(cartsvc.State{Lines: []cartsvc.Line{}}))
	}
}

// CartSummary prices the cart with the chosen shipping tier. The same
// breakdown backs the drawer, the review step and the confirmation page.
func CartSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		method := enums.ShippingMethodStandard
		if raw := r.URL.Query().Get("shipping_method"); raw != "" {
			parsed, err := enums.ParseShippingMethod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method"))
				return
			}
			method = parsed
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		summary, err := svc.Summary(r.Context(), clientID, method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summaryResponse(summary))
	}
}

type cartSummaryResponse struct {
	Subtotal        int64  `json:"subtotal"`
	ShippingMethod  string `json:"shipping_method"`
	ShippingCost    int64  `json:"shipping_cost"`
	Tax             int64  `json:"tax"`
	Total           int64  `json:"total"`
	SubtotalDisplay string `json:"subtotal_display"`
	ShippingDisplay string `json:"shipping_display"`
	TaxDisplay      string `json:"tax_display"`
	TotalDisplay    string `json:"total_display"`
}

func summaryResponse(s pricing.Summary) cartSummaryResponse {
	return cartSummaryResponse{
		Subtotal:        s.Subtotal,
		ShippingMethod:  string(s.ShippingMethod),
		ShippingCost:    s.ShippingCost,
		Tax:             s.Tax,
		Total:           s.Total,
		TotalDisplay:    pricing.FormatIDR(s.Total),
		SubtotalDisplay: pricing.FormatIDR(s.Subtotal),
		ShippingDisplay: pricing.FormatIDR(s.ShippingCost),
		TaxDisplay:      pricing.FormatIDR(s.Tax),
	}
}
