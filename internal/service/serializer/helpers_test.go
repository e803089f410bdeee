package serializer

import (
	"errors"
	"strings"

	"github.com/corray333/backend-labs/marketing/internal/service/models/country"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

type stubMedia struct{}

func (stubMedia) SmallImageURL(p orderitem.Product) string {
	return "https://cdn.test/small" + p.SmallImage
}

type stubTags map[int64][]string

func (s stubTags) Tags(p orderitem.Product) []string {
	return s[p.ID]
}

type stubCountries map[string]string

func (s stubCountries) Resolve(code string) (country.Info, error) {
	name, ok := s[strings.ToUpper(code)]
	if !ok {
		return country.Info{}, errors.New("unknown country")
	}

	return country.Info{Code: country.Code(code), Name: name}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func simpleItem(id int64, sku, name string) orderitem.LineItem {
	return orderitem.LineItem{
		ID:          id,
		SKU:         sku,
		Name:        name,
		QtyOrdered:  dec("1"),
		Price:       dec("10.00"),
		ProductType: orderitem.TypeSimple,
		Product:     orderitem.Product{ID: id, URL: "https://shop.test/" + strings.ToLower(sku), SmallImage: "/" + sku + ".jpg"},
	}
}

func configurableItem(id int64, sku, simpleSKU, name string, attrs ...orderitem.OptionAttribute) orderitem.LineItem {
	item := simpleItem(id, sku, name)
	item.ProductType = orderitem.TypeConfigurable
	item.Options = orderitem.ProductOptions{SimpleSKU: simpleSKU, AttributesInfo: attrs}

	return item
}
