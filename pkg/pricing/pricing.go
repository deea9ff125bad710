package pricing

import (
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Flat shipping tiers in rupiah. There is no distance or weight calculation.
const (
	StandardShippingCost int64 = 59990
	ExpressShippingCost  int64 = 129990
)

// taxRate is the flat 11% PPN applied to the goods subtotal.
var taxRate = decimal.New(11, -2)

// Summary is the priced breakdown of an order. Every view that shows a
// price breakdown (cart drawer, review step, confirmation) derives it from
// Quote so the figures cannot drift apart.
type Summary struct {
	Subtotal       int64                `json:"subtotal"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
	ShippingCost   int64                `json:"shipping_cost"`
	Tax            int64                `json:"tax"`
	Total          int64                `json:"total"`
}

// Quote prices an order: flat shipping tier plus 11% tax on the subtotal,
// rounded half away from zero to whole rupiah.
func Quote(subtotal int64, method enums.ShippingMethod) Summary {
	shipping := StandardShippingCost
	if method == enums.ShippingMethodExpress {
		shipping = ExpressShippingCost
	} else {
		method = enums.ShippingMethodStandard
	}

	tax := decimal.NewFromInt(subtotal).Mul(taxRate).Round(0).IntPart()

	return Summary{
		Subtotal:       subtotal,
		ShippingMethod: method,
		ShippingCost:   shipping,
		Tax:            tax,
		Total:          subtotal + shipping + tax,
	}
}
