package checkout

import (
	"strings"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
)

// ShippingInfo is the delivery address form. All fields are free text;
// advancement only requires that none are blank.
type ShippingInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// Complete reports whether every shipping field is non-blank.
func (s ShippingInfo) Complete() bool {
	for _, field := range []string{
		s.FirstName, s.LastName, s.Email, s.Phone,
		s.Address, s.City, s.State, s.ZipCode, s.Country,
	} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// CardDetails are the credit-card sub-fields. They are only required when
// the selected method is credit-card.
type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
}

func (c CardDetails) complete() bool {
	for _, field := range []string{c.Number, c.Name, c.Expiry, c.CVC} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// PaymentSelection is the chosen payment method plus its variant data.
type PaymentSelection struct {
	Method enums.PaymentMethod `json:"method"`
	Card   *CardDetails        `json:"card,omitempty"`
	Bank   string              `json:"bank,omitempty"`
	Wallet string              `json:"wallet,omitempty"`
}

// Valid reports whether the selection can carry the wizard past the
// payment step. Only credit-card has required sub-fields.
func (p PaymentSelection) Valid() bool {
	if !p.Method.IsValid() {
		return false
	}
	if p.Method == enums.PaymentMethodCreditCard {
		return p.Card != nil && p.Card.complete()
	}
	return true
}

// State is one client's in-progress checkout wizard.
type State struct {
	Step           enums.CheckoutStep   `json:"step"`
	Shipping       ShippingInfo         `json:"shipping"`
	Payment        PaymentSelection     `json:"payment"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
}

// NewState starts a wizard at the shipping step with standard delivery.
func NewState() State {
	return State{
		Step:           enums.CheckoutStepShipping,
		ShippingMethod: enums.ShippingMethodStandard,
	}
}

// transitions is the full move table. Forward moves are strictly linear;
// backward moves are allowed except out of confirmation, which is terminal.
var transitions = map[enums.CheckoutStep][]enums.CheckoutStep{
	enums.CheckoutStepShipping:     {enums.CheckoutStepPayment},
	enums.CheckoutStepPayment:      {enums.CheckoutStepReview, enums.CheckoutStepShipping},
	enums.CheckoutStepReview:       {enums.CheckoutStepConfirmation, enums.CheckoutStepPayment},
	enums.CheckoutStepConfirmation: {},
}

func canMove(from, to enums.CheckoutStep) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Advance validates and applies one wizard move. Confirmation is never
// reachable through Advance; only placing the order moves there.
func Advance(s State, to enums.CheckoutStep) (State, error) {
	if !to.IsValid() {
		return State{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid checkout step").
			WithDetails(map[string]any{"step": string(to)})
	}
	if to == enums.CheckoutStepConfirmation {
		return State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "confirmation is reached by placing the order").
			WithDetails(map[string]any{"from": string(s.Step)})
	}
	if !canMove(s.Step, to) {
		return State{}, pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed").
			WithDetails(map[string]any{"from": string(s.Step), "to": string(to)})
	}

	switch to {
	case enums.CheckoutStepPayment:
		if s.Step == enums.CheckoutStepShipping && !s.Shipping.Complete() {
			return State{}, pkgerrors.New(pkgerrors.CodeValidation, "shipping information is incomplete")
		}
	case enums.CheckoutStepReview:
		if !s.Payment.Valid() {
			return State{}, pkgerrors.New(pkgerrors.CodeValidation, "payment selection is incomplete")
		}
	}

	s.Step = to
	return s, nil
}
