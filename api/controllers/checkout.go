package controllers

import (
	"net/http"

	"github.com/ecocraftid/ecocraft-backend/api/middleware"
	"github.com/ecocraftid/ecocraft-backend/api/responses"
	"github.com/ecocraftid/ecocraft-backend/api/validators"
	checkoutsvc "github.com/ecocraftid/ecocraft-backend/internal/checkout"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
	"github.com/ecocraftid/ecocraft-backend/pkg/logger"
)

type checkoutStatePayload struct {
	Step           string                   `json:"step" validate:"required"`
	Shipping       checkoutsvc.ShippingInfo `json:"shipping"`
	Payment        checkoutPaymentPayload   `json:"payment"`
	ShippingMethod string                   `json:"shipping_method"`
}

type checkoutPaymentPayload struct {
	Method string                   `json:"method"`
	Card   *checkoutsvc.CardDetails `json:"card,omitempty"`
	Bank   string                   `json:"bank,omitempty"`
	Wallet string                   `json:"wallet,omitempty"`
}

func (p checkoutStatePayload) toState() (checkoutsvc.State, error) {
	step, err := enums.ParseCheckoutStep(p.Step)
	if err != nil {
		return checkoutsvc.State{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid step")
	}

	method := enums.ShippingMethodStandard
	if p.ShippingMethod != "" {
		method, err = enums.ParseShippingMethod(p.ShippingMethod)
		if err != nil {
			return checkoutsvc.State{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping method")
		}
	}

	payment := checkoutsvc.PaymentSelection{
		Card:   p.Payment.Card,
		Bank:   p.Payment.Bank,
		Wallet: p.Payment.Wallet,
	}
	if p.Payment.Method != "" {
		parsed, err := enums.ParsePaymentMethod(p.Payment.Method)
		if err != nil {
			return checkoutsvc.State{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
		}
		payment.Method = parsed
	}

	return checkoutsvc.State{
		Step:           step,
		Shipping:       p.Shipping,
		Payment:        payment,
		ShippingMethod: method,
	}, nil
}

func newCheckoutStateResponse(s checkoutsvc.State) checkoutStatePayload {
	return checkoutStatePayload{
		Step:     string(s.Step),
		Shipping: s.Shipping,
		Payment: checkoutPaymentPayload{
			Method: string(s.Payment.Method),
			Card:   s.Payment.Card,
			Bank:   s.Payment.Bank,
			Wallet: s.Payment.Wallet,
		},
		ShippingMethod: string(s.ShippingMethod),
	}
}

// CheckoutBegin returns a fresh wizard at the shipping step.
func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(svc.Begin()))
	}
}

type checkoutAdvanceRequest struct {
	State checkoutStatePayload `json:"state" validate:"required"`
	To    string               `json:"to" validate:"required"`
}

// CheckoutAdvance applies one wizard transition with its guard.
func CheckoutAdvance(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutAdvanceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := payload.State.toState()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		to, err := enums.ParseCheckoutStep(payload.To)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target step"))
			return
		}

		next, err := svc.Advance(r.Context(), state, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(next))
	}
}

type checkoutSaveRequest struct {
	State checkoutStatePayload `json:"state" validate:"required"`
}

func CheckoutSave(sessions checkoutsvc.SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutSaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := payload.State.toState()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		saved, err := sessions.Save(r.Context(), clientID, state)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, saved)
	}
}

// CheckoutSession reports whether a resumable session exists.
func CheckoutSession(sessions checkoutsvc.SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		session, err := sessions.DetectResumable(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"resumable": session != nil,
			"session":   session,
		})
	}
}

func CheckoutResume(sessions checkoutsvc.SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		state, err := sessions.Resume(r.Context(), clientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCheckoutStateResponse(state))
	}
}

func CheckoutDismiss(sessions checkoutsvc.SessionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		if err := sessions.Dismiss(r.Context(), clientID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "dismissed"})
	}
}

type placeOrderRequest struct {
	State checkoutStatePayload `json:"state" validate:"required"`
}

type confirmationResponse struct {
	OrderID       string              `json:"order_id"`
	DisplayNumber string              `json:"display_number"`
	OrderDate     string              `json:"order_date"`
	Step          string              `json:"step"`
	Summary       cartSummaryResponse `json:"summary"`
}

// CheckoutPlaceOrder runs the simulated payment step and completes the
// wizard. The cart and any saved session are cleared on success.
func CheckoutPlaceOrder(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, err := payload.State.toState()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID := middleware.ClientIDFromContext(r.Context())
		conf, err := svc.PlaceOrder(r.Context(), clientID, state)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmationResponse{
			OrderID:       conf.OrderID.String(),
			DisplayNumber: conf.DisplayNumber,
			OrderDate:     conf.OrderDate,
			Step:          string(enums.CheckoutStepConfirmation),
			Summary:       summaryResponse(conf.Summary),
		})
	}
}
