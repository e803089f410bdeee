package serializer

import (
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/shopspring/decimal"
)

var centsPerUnit = decimal.NewFromInt(100)

// BuildAdjustments returns the non-zero shipping, discount and tax
// adjustments of o, in that order, priced in cents.
func BuildAdjustments(o *order.Order) []event.Adjustment {
	adjustments := make([]event.Adjustment, 0, 3)

	if !o.ShippingAmount.IsZero() {
		adjustments = append(adjustments, event.Adjustment{
			Title: event.AdjustmentShipping,
			Price: toCents(o.ShippingAmount),
		})
	}

	// Discounts are stored with either sign; the platform expects a credit.
	if !o.DiscountAmount.IsZero() {
		adjustments = append(adjustments, event.Adjustment{
			Title: event.AdjustmentDiscount,
			Price: toCents(o.DiscountAmount.Abs().Neg()),
		})
	}

	if !o.TaxAmount.IsZero() {
		adjustments = append(adjustments, event.Adjustment{
			Title: event.AdjustmentTax,
			Price: toCents(o.TaxAmount),
		})
	}

	return adjustments
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).Round(0).IntPart()
}
