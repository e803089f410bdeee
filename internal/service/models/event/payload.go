package event

import (
	"encoding/json"

	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

// CreatedDateLayout is the layout of the created_date field.
const CreatedDateLayout = "2006-01-02 15:04:05"

// Adjustment titles.
const (
	AdjustmentShipping = "Shipping"
	AdjustmentDiscount = "Discount"
	AdjustmentTax      = "Tax"
)

// OrderEventPayload is the purchase payload consumed by the marketing platform.
type OrderEventPayload struct {
	Order OrderVars `json:"order"`
}

// OrderVars holds the order section of the payload.
type OrderVars struct {
	ID                  int64               `json:"id"`
	Items               []CanonicalLineItem `json:"items"`
	Adjustments         []Adjustment        `json:"adjustments"`
	Tenders             Tenders             `json:"tenders"`
	Name                string              `json:"name"`
	Status              string              `json:"status"`
	State               string              `json:"state"`
	CreatedDate         string              `json:"created_date"`
	Total               float64             `json:"total"`
	Subtotal            float64             `json:"subtotal"`
	CouponCode          string              `json:"couponCode"`
	Discount            float64             `json:"discount"`
	ShippingDescription string              `json:"shippingDescription"`
	IsGuest             int                 `json:"isGuest"`
	BillingAddress      *FormattedAddress   `json:"billingAddress"`
	ShippingAddress     *FormattedAddress   `json:"shippingAddress"`
}

// CanonicalLineItem is the single emitted representation of a purchased product.
// Items built from a configurable parent always carry the options key, even
// when it is null.
type CanonicalLineItem struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Options      *ItemOptions `json:"options,omitempty"`
	Qty          int64        `json:"qty"`
	URL          string       `json:"url"`
	Image        string       `json:"image"`
	Price        float64      `json:"price"`
	Tags         []string     `json:"tags,omitempty"`
	Configurable bool         `json:"-"`
}

// MarshalJSON keeps "options" for configurable items.
func (c CanonicalLineItem) MarshalJSON() ([]byte, error) {
	type plain CanonicalLineItem
	if !c.Configurable {
		return json.Marshal(plain(c))
	}

	return json.Marshal(struct {
		plain
		Options *ItemOptions `json:"options"`
	}{plain: plain(c), Options: c.Options})
}

// Adjustment is a non-product charge or credit, priced in cents.
type Adjustment struct {
	Title string `json:"title"`
	Price int64  `json:"price"`
}

// Tender is a payment method summary, priced in base currency units.
type Tender struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// Tenders is either empty or a non-empty list of tenders.
// The zero value is empty.
type Tenders struct {
	items []Tender
}

// NewTenders returns tenders holding the given entries.
func NewTenders(items ...Tender) Tenders {
	if len(items) == 0 {
		return Tenders{}
	}

	return Tenders{items: append([]Tender(nil), items...)}
}

// IsEmpty reports whether no tender data is present.
func (t Tenders) IsEmpty() bool {
	return len(t.items) == 0
}

// Items returns a copy of the tender list.
func (t Tenders) Items() []Tender {
	return append([]Tender(nil), t.items...)
}

// MarshalJSON encodes an empty value as "" and a present value as a list.
func (t Tenders) MarshalJSON() ([]byte, error) {
	if t.IsEmpty() {
		return []byte(`""`), nil
	}

	return json.Marshal(t.items)
}

// ItemOptions carries normalized option attributes in one of two shapes:
// the verbose label/value sequence or a label to value mapping.
type ItemOptions struct {
	labelValues []orderitem.OptionAttribute
	values      map[string]string
	verbose     bool
}

// NewVerboseOptions wraps an ordered label/value sequence.
func NewVerboseOptions(attrs []orderitem.OptionAttribute) *ItemOptions {
	return &ItemOptions{
		labelValues: append([]orderitem.OptionAttribute{}, attrs...),
		verbose:     true,
	}
}

// NewFlatOptions wraps a label to value mapping.
func NewFlatOptions(values map[string]string) *ItemOptions {
	if values == nil {
		values = map[string]string{}
	}

	return &ItemOptions{values: values}
}

// IsVerbose reports whether the options keep the label/value sequence.
func (o *ItemOptions) IsVerbose() bool {
	return o.verbose
}

// LabelValues returns the verbose sequence, nil for the flat shape.
func (o *ItemOptions) LabelValues() []orderitem.OptionAttribute {
	if !o.verbose {
		return nil
	}

	return append([]orderitem.OptionAttribute{}, o.labelValues...)
}

// Values returns the label to value mapping, nil for the verbose shape.
func (o *ItemOptions) Values() map[string]string {
	if o.verbose {
		return nil
	}
	out := make(map[string]string, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}

	return out
}

// MarshalJSON encodes the active shape.
func (o *ItemOptions) MarshalJSON() ([]byte, error) {
	if o.verbose {
		return json.Marshal(o.labelValues)
	}

	return json.Marshal(o.values)
}

// FormattedAddress is the flattened address object of the payload.
type FormattedAddress struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Telephone   string `json:"telephone"`
	Street1     string `json:"street1"`
	Street2     string `json:"street2"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	StateCode   string `json:"state_code"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code"`
}

// GuestVariable is the standalone isGuest template variable.
type GuestVariable struct {
	IsGuest int `json:"isGuest"`
}
