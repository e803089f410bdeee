package order

import (
	"errors"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// Order represents a placed order as read from the store.
type Order struct {
	ID                  int64                `json:"id"`
	IncrementID         string               `json:"incrementId"`
	CustomerName        string               `json:"customerName"`
	CustomerEmail       string               `json:"customerEmail"`
	Status              string               `json:"status"`
	State               string               `json:"state"`
	CreatedAt           time.Time            `json:"createdAt"`
	GrandTotal          decimal.Decimal      `json:"grandTotal"`
	Subtotal            decimal.Decimal      `json:"subtotal"`
	ShippingAmount      decimal.Decimal      `json:"shippingAmount"`
	DiscountAmount      decimal.Decimal      `json:"discountAmount"`
	TaxAmount           decimal.Decimal      `json:"taxAmount"`
	CouponCode          string               `json:"couponCode"`
	ShippingDescription string               `json:"shippingDescription"`
	IsGuest             bool                 `json:"isGuest"`
	BillingAddress      *Address             `json:"billingAddress"`
	ShippingAddress     *Address             `json:"shippingAddress"`
	Items               []orderitem.LineItem `json:"items"`
	Payment             *Payment             `json:"payment"`
}

// Payment is the payment record attached to an order.
type Payment struct {
	Method            string          `json:"method"`
	CcType            string          `json:"ccType"`
	BaseAmountOrdered decimal.Decimal `json:"baseAmountOrdered"`
}

// Address is a billing or shipping address of an order.
type Address struct {
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Company    string   `json:"company"`
	Street     []string `json:"street"`
	City       string   `json:"city"`
	Region     string   `json:"region"`
	RegionCode string   `json:"regionCode"`
	Postcode   string   `json:"postcode"`
	CountryID  string   `json:"countryId"`
	Telephone  string   `json:"telephone"`
	Email      string   `json:"email"`
}
