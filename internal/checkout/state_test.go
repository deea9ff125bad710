package checkout

import (
	"testing"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	pkgerrors "github.com/ecocraftid/ecocraft-backend/pkg/errors"
)

func completeShipping() ShippingInfo {
	return ShippingInfo{
		FirstName: "Dewi",
		LastName:  "Lestari",
		Email:     "dewi@example.com",
		Phone:     "+62 812-3456-7890",
		Address:   "Jl. Kemang Raya No. 10",
		City:      "Jakarta Selatan",
		State:     "DKI Jakarta",
		ZipCode:   "12730",
		Country:   "Indonesia",
	}
}

func completeCard() *CardDetails {
	return &CardDetails{
		Number: "4111 1111 1111 1111",
		Name:   "Dewi Lestari",
		Expiry: "12/27",
		CVC:    "123",
	}
}

func reviewReadyState() State {
	s := NewState()
	s.Step = enums.CheckoutStepReview
	s.Shipping = completeShipping()
	s.Payment = PaymentSelection{Method: enums.PaymentMethodCreditCard, Card: completeCard()}
	return s
}

func TestNewStateStartsAtShipping(t *testing.T) {
	s := NewState()
	if s.Step != enums.CheckoutStepShipping {
		t.Fatalf("initial step = %s", s.Step)
	}
	if s.ShippingMethod != enums.ShippingMethodStandard {
		t.Fatalf("initial shipping method = %s", s.ShippingMethod)
	}
}

func TestAdvanceShippingToPaymentRequiresCompleteForm(t *testing.T) {
	s := NewState()

	_, err := Advance(s, enums.CheckoutStepPayment)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("incomplete shipping must block advancement, got %v", err)
	}

	s.Shipping = completeShipping()
	next, err := Advance(s, enums.CheckoutStepPayment)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if next.Step != enums.CheckoutStepPayment {
		t.Fatalf("step = %s", next.Step)
	}
}

func TestAdvanceBlankFieldBlocks(t *testing.T) {
	s := NewState()
	s.Shipping = completeShipping()
	s.Shipping.ZipCode = "   "

	_, err := Advance(s, enums.CheckoutStepPayment)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("whitespace-only field must count as blank, got %v", err)
	}
}

func TestAdvancePaymentToReviewGuards(t *testing.T) {
	s := NewState()
	s.Step = enums.CheckoutStepPayment
	s.Shipping = completeShipping()

	// No method selected.
	_, err := Advance(s, enums.CheckoutStepReview)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing payment selection must block, got %v", err)
	}

	// Credit card without sub-fields.
	s.Payment = PaymentSelection{Method: enums.PaymentMethodCreditCard}
	_, err = Advance(s, enums.CheckoutStepReview)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("card without details must block, got %v", err)
	}

	// Bank transfer needs no sub-fields.
	s.Payment = PaymentSelection{Method: enums.PaymentMethodBankTransfer}
	next, err := Advance(s, enums.CheckoutStepReview)
	if err != nil {
		t.Fatalf("Advance with bank transfer: %v", err)
	}
	if next.Step != enums.CheckoutStepReview {
		t.Fatalf("step = %s", next.Step)
	}
}

func TestAdvanceBackwardMoves(t *testing.T) {
	s := reviewReadyState()

	back, err := Advance(s, enums.CheckoutStepPayment)
	if err != nil {
		t.Fatalf("review -> payment: %v", err)
	}
	if back.Step != enums.CheckoutStepPayment {
		t.Fatalf("step = %s", back.Step)
	}
	if back.Shipping != s.Shipping {
		t.Fatal("backward move must not drop entered data")
	}

	back2, err := Advance(back, enums.CheckoutStepShipping)
	if err != nil {
		t.Fatalf("payment -> shipping: %v", err)
	}
	if back2.Step != enums.CheckoutStepShipping {
		t.Fatalf("step = %s", back2.Step)
	}
}

func TestAdvanceRejectsSkipsAndTerminalMoves(t *testing.T) {
	cases := []struct {
		name string
		from enums.CheckoutStep
		to   enums.CheckoutStep
	}{
		{"skip to review", enums.CheckoutStepShipping, enums.CheckoutStepReview},
		{"back from confirmation", enums.CheckoutStepConfirmation, enums.CheckoutStepReview},
		{"restart from confirmation", enums.CheckoutStepConfirmation, enums.CheckoutStepShipping},
		{"review back to shipping", enums.CheckoutStepReview, enums.CheckoutStepShipping},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := reviewReadyState()
			s.Step = tc.from
			_, err := Advance(s, tc.to)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
				t.Fatalf("%s -> %s must be rejected, got %v", tc.from, tc.to, err)
			}
		})
	}
}

func TestAdvanceNeverReachesConfirmation(t *testing.T) {
	s := reviewReadyState()

	_, err := Advance(s, enums.CheckoutStepConfirmation)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("Advance to confirmation must be rejected, got %v", err)
	}
}

func TestAdvanceRejectsUnknownStep(t *testing.T) {
	s := NewState()

	_, err := Advance(s, enums.CheckoutStep("gift-wrap"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unknown step must be rejected, got %v", err)
	}
}
