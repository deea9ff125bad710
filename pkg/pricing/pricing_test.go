package pricing

import (
	"testing"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
)

func TestQuoteStandardShipping(t *testing.T) {
	t.Parallel()

	// One item at 299990 plus two at 199990.
	summary := Quote(699970, enums.ShippingMethodStandard)

	if summary.ShippingCost != 59990 {
		t.Fatalf("unexpected shipping cost %d", summary.ShippingCost)
	}
	if summary.Tax != 76997 {
		t.Fatalf("expected tax 76997, got %d", summary.Tax)
	}
	if summary.Total != 836957 {
		t.Fatalf("expected total 836957, got %d", summary.Total)
	}
}

func TestQuoteExpressChangesOnlyShippingAndTotal(t *testing.T) {
	t.Parallel()

	standard := Quote(699970, enums.ShippingMethodStandard)
	express := Quote(699970, enums.ShippingMethodExpress)

	if express.ShippingCost != 129990 {
		t.Fatalf("unexpected express shipping cost %d", express.ShippingCost)
	}
	if express.Subtotal != standard.Subtotal {
		t.Fatal("subtotal must not depend on shipping method")
	}
	if express.Tax != standard.Tax {
		t.Fatal("tax must not depend on shipping method")
	}
	if want := standard.Total - standard.ShippingCost + express.ShippingCost; express.Total != want {
		t.Fatalf("expected total %d, got %d", want, express.Total)
	}
}

func TestQuoteUnknownMethodFallsBackToStandard(t *testing.T) {
	t.Parallel()

	summary := Quote(100000, enums.ShippingMethod("overnight"))
	if summary.ShippingMethod != enums.ShippingMethodStandard {
		t.Fatalf("expected standard fallback, got %s", summary.ShippingMethod)
	}
	if summary.ShippingCost != 59990 {
		t.Fatalf("unexpected shipping cost %d", summary.ShippingCost)
	}
}

func TestQuoteRoundsTaxHalfUp(t *testing.T) {
	t.Parallel()

	// 50 * 0.11 = 5.5 rounds up to 6.
	if got := Quote(50, enums.ShippingMethodStandard).Tax; got != 6 {
		t.Fatalf("expected half-up rounding to 6, got %d", got)
	}
	// 59 * 0.11 = 6.49 rounds down to 6.
	if got := Quote(59, enums.ShippingMethodStandard).Tax; got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
}

func TestQuoteZeroSubtotal(t *testing.T) {
	t.Parallel()

	summary := Quote(0, enums.ShippingMethodStandard)
	if summary.Tax != 0 {
		t.Fatalf("expected zero tax, got %d", summary.Tax)
	}
	if summary.Total != summary.ShippingCost {
		t.Fatalf("empty cart total should equal shipping, got %d", summary.Total)
	}
}

func TestFormatIDR(t *testing.T) {
	t.Parallel()

	if got := FormatIDR(299990); got != "Rp299.990" {
		t.Fatalf("unexpected formatting %q", got)
	}
	if got := FormatIDR(0); got != "Rp0" {
		t.Fatalf("unexpected formatting %q", got)
	}
}
