package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecocraftid/ecocraft-backend/api/middleware"
	"github.com/ecocraftid/ecocraft-backend/api/responses"
	ordersvc "github.com/ecocraftid/ecocraft-backend/internal/orders"
	"github.com/ecocraftid/ecocraft-backend/pkg/db/models"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
	"github.com/ecocraftid/ecocraft-backend/pkg/pricing"
)

type orderLineResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

type orderResponse struct {
	ID             uuid.UUID           `json:"id"`
	DisplayNumber  string              `json:"display_number"`
	ShippingMethod string              `json:"shipping_method"`
	PaymentMethod  string              `json:"payment_method"`
	Subtotal       int64               `json:"subtotal"`
	ShippingCost   int64               `json:"shipping_cost"`
	Tax            int64               `json:"tax"`
	Total          int64               `json:"total"`
	TotalDisplay   string              `json:"total_display"`
	Lines          []orderLineResponse `json:"lines"`
	PlacedAt       time.Time           `json:"placed_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Image:     l.Image,
		})
	}

	return orderResponse{
		ID:             order.ID,
		DisplayNumber:  order.DisplayNumber,
		ShippingMethod: string(order.ShippingMethod),
		PaymentMethod:  string(order.PaymentMethod),
		Subtotal:       order.Subtotal,
		ShippingCost:   order.ShippingCost,
		Tax:            order.Tax,
		Total:          order.Total,
		TotalDisplay:   pricing.FormatIDR(order.Total),
		Lines:          lines,
		PlacedAt:       order.PlacedAt,
	}
}

func OrdersList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		list, err := svc.ListForClient(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]orderResponse, 0, len(list))
		for i := range list {
			out = append(out, newOrderResponse(&list[i]))
		}

		responses.WriteSuccess(w, map[string]any{
			"orders": out,
			"count":  len(out),
		})
	}
}

func OrdersGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		order, err := svc.GetByID(r.Context(), clientID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
