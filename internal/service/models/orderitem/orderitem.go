package orderitem

import "github.com/shopspring/decimal"

// Product type identifiers as stored on order items.
const (
	TypeSimple       = "simple"
	TypeConfigurable = "configurable"
)

// LineItem represents a visible item within an order.
type LineItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	QtyOrdered  decimal.Decimal `json:"qtyOrdered"`
	Price       decimal.Decimal `json:"price"`
	ProductType string          `json:"productType"`
	Product     Product         `json:"product"`
	Options     ProductOptions  `json:"options"`
}

// IsConfigurable reports whether the item is a configurable parent.
func (i LineItem) IsConfigurable() bool {
	return i.ProductType == TypeConfigurable
}

// Product is the catalog product snapshot referenced by a line item.
type Product struct {
	ID           int64    `json:"id"`
	URL          string   `json:"url"`
	SmallImage   string   `json:"smallImage"`
	MetaKeywords string   `json:"metaKeywords"`
	Categories   []string `json:"categories"`
}

// ProductOptions holds the option set stored with an ordered item.
// AttributesInfo is nil when the item carries no attribute metadata.
type ProductOptions struct {
	SimpleSKU      string            `json:"simple_sku,omitempty"`
	AttributesInfo []OptionAttribute `json:"attributes_info,omitempty"`
}

// OptionAttribute is a single label/value pair of a selected option.
type OptionAttribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
