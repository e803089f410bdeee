package serializer

import (
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
)

// ExtractTenders summarizes the payment of o. Both a missing payment and a
// payment without a card-type label yield empty tenders. A label made of
// blanks is still a label.
func ExtractTenders(o *order.Order) event.Tenders {
	if o.Payment == nil {
		return event.Tenders{}
	}

	title := o.Payment.CcType
	if title == "" {
		return event.Tenders{}
	}

	return event.NewTenders(event.Tender{
		Title: title,
		Price: o.Payment.BaseAmountOrdered.InexactFloat64(),
	})
}
