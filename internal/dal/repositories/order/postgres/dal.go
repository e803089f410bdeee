package postgresrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

const (
	addressTypeBilling  = "billing"
	addressTypeShipping = "shipping"
)

// OrderDal is the orders row.
type OrderDal struct {
	ID                  int64
	IncrementID         string
	CustomerName        string
	CustomerEmail       string
	Status              string
	State               string
	GrandTotal          decimal.Decimal
	Subtotal            decimal.Decimal
	ShippingAmount      decimal.Decimal
	DiscountAmount      decimal.Decimal
	TaxAmount           decimal.Decimal
	CouponCode          string
	ShippingDescription string
	IsGuest             bool
	CreatedAt           time.Time
}

func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:                  o.ID,
		IncrementID:         o.IncrementID,
		CustomerName:        o.CustomerName,
		CustomerEmail:       o.CustomerEmail,
		Status:              o.Status,
		State:               o.State,
		CreatedAt:           o.CreatedAt,
		GrandTotal:          o.GrandTotal,
		Subtotal:            o.Subtotal,
		ShippingAmount:      o.ShippingAmount,
		DiscountAmount:      o.DiscountAmount,
		TaxAmount:           o.TaxAmount,
		CouponCode:          o.CouponCode,
		ShippingDescription: o.ShippingDescription,
		IsGuest:             o.IsGuest,
	}
}

func (o *OrderDal) scanTargets() []any {
	return []any{
		&o.ID, &o.IncrementID, &o.CustomerName, &o.CustomerEmail, &o.Status, &o.State,
		&o.GrandTotal, &o.Subtotal, &o.ShippingAmount, &o.DiscountAmount, &o.TaxAmount,
		&o.CouponCode, &o.ShippingDescription, &o.IsGuest, &o.CreatedAt,
	}
}

// OrderItemDal is the order_items row.
type OrderItemDal struct {
	ID             int64
	OrderID        int64
	SKU            string
	Name           string
	QtyOrdered     decimal.Decimal
	Price          decimal.Decimal
	ProductType    string
	ProductID      int64
	ProductURL     string
	SmallImage     string
	MetaKeywords   string
	Categories     []string
	ProductOptions []byte
}

// ToModel decodes the stored product_options document alongside the row.
func (i *OrderItemDal) ToModel() (orderitem.LineItem, error) {
	var opts orderitem.ProductOptions
	if len(i.ProductOptions) > 0 {
		if err := json.Unmarshal(i.ProductOptions, &opts); err != nil {
			return orderitem.LineItem{}, fmt.Errorf("failed to decode product options of item %d: %w", i.ID, err)
		}
	}

	return orderitem.LineItem{
		ID:          i.ID,
		OrderID:     i.OrderID,
		SKU:         i.SKU,
		Name:        i.Name,
		QtyOrdered:  i.QtyOrdered,
		Price:       i.Price,
		ProductType: i.ProductType,
		Product: orderitem.Product{
			ID:           i.ProductID,
			URL:          i.ProductURL,
			SmallImage:   i.SmallImage,
			MetaKeywords: i.MetaKeywords,
			Categories:   i.Categories,
		},
		Options: opts,
	}, nil
}

func (i *OrderItemDal) scanTargets() []any {
	return []any{
		&i.ID, &i.OrderID, &i.SKU, &i.Name, &i.QtyOrdered, &i.Price, &i.ProductType,
		&i.ProductID, &i.ProductURL, &i.SmallImage, &i.MetaKeywords, &i.Categories, &i.ProductOptions,
	}
}

// PaymentDal is the order_payments row.
type PaymentDal struct {
	Method            string
	CcType            string
	BaseAmountOrdered decimal.Decimal
}

func (p *PaymentDal) ToModel() *order.Payment {
	return &order.Payment{
		Method:            p.Method,
		CcType:            p.CcType,
		BaseAmountOrdered: p.BaseAmountOrdered,
	}
}

// AddressDal is the order_addresses row.
type AddressDal struct {
	AddressType string
	FirstName   string
	LastName    string
	Company     string
	Street      []string
	City        string
	Region      string
	RegionCode  string
	Postcode    string
	CountryID   string
	Telephone   string
	Email       string
}

func (a *AddressDal) ToModel() *order.Address {
	return &order.Address{
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Company:    a.Company,
		Street:     a.Street,
		City:       a.City,
		Region:     a.Region,
		RegionCode: a.RegionCode,
		Postcode:   a.Postcode,
		CountryID:  a.CountryID,
		Telephone:  a.Telephone,
		Email:      a.Email,
	}
}

func (a *AddressDal) scanTargets() []any {
	return []any{
		&a.AddressType, &a.FirstName, &a.LastName, &a.Company, &a.Street, &a.City,
		&a.Region, &a.RegionCode, &a.Postcode, &a.CountryID, &a.Telephone, &a.Email,
	}
}

// attachAddresses places each row on the billing or shipping slot of o.
func attachAddresses(o *order.Order, rows []AddressDal) {
	for i := range rows {
		switch rows[i].AddressType {
		case addressTypeBilling:
			o.BillingAddress = rows[i].ToModel()
		case addressTypeShipping:
			o.ShippingAddress = rows[i].ToModel()
		}
	}
}
