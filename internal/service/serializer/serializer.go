package serializer

import (
	"errors"

	"github.com/corray333/backend-labs/marketing/internal/service/models/country"
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
)

// ErrNilOrder is returned when Serialize is called without an order.
var ErrNilOrder = errors.New("order is nil")

// ProductMedia resolves catalog image URLs.
type ProductMedia interface {
	SmallImageURL(product orderitem.Product) string
}

// ProductTags resolves the tag set of a product.
type ProductTags interface {
	Tags(product orderitem.Product) []string
}

// CountryResolver resolves country metadata by code.
type CountryResolver interface {
	Resolve(code string) (country.Info, error)
}

// Serializer turns orders into purchase event payloads.
// It holds only read-only collaborators and is safe for concurrent use.
type Serializer struct {
	media     ProductMedia
	tags      ProductTags
	countries CountryResolver
}

// option is a function that configures the Serializer.
type option func(*Serializer)

// NewSerializer creates a new Serializer.
func NewSerializer(opts ...option) *Serializer {
	s := &Serializer{
		media:     noopMedia{},
		tags:      noopTags{},
		countries: noopCountries{},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithProductMedia sets the image resolver.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductMedia(media ProductMedia) option {
	return func(s *Serializer) {
		if media != nil {
			s.media = media
		}
	}
}

// WithProductTags sets the tag resolver.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductTags(tags ProductTags) option {
	return func(s *Serializer) {
		if tags != nil {
			s.tags = tags
		}
	}
}

// WithCountryResolver sets the country resolver used for verbose addresses.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCountryResolver(countries CountryResolver) option {
	return func(s *Serializer) {
		if countries != nil {
			s.countries = countries
		}
	}
}

// Serialize builds the purchase payload for o. The order is never modified
// and the payload shares no memory with it.
func (s *Serializer) Serialize(o *order.Order) (event.OrderEventPayload, error) {
	if o == nil {
		return event.OrderEventPayload{}, ErrNilOrder
	}

	collapser := NewCollapser(s.media, s.tags)

	return event.OrderEventPayload{
		Order: event.OrderVars{
			ID:                  o.ID,
			Items:               collapser.Collapse(o.Items),
			Adjustments:         BuildAdjustments(o),
			Tenders:             ExtractTenders(o),
			Name:                o.CustomerName,
			Status:              o.Status,
			State:               o.State,
			CreatedDate:         formatCreatedDate(o),
			Total:               o.GrandTotal.InexactFloat64(),
			Subtotal:            o.Subtotal.InexactFloat64(),
			CouponCode:          o.CouponCode,
			Discount:            o.DiscountAmount.InexactFloat64(),
			ShippingDescription: o.ShippingDescription,
			IsGuest:             guestFlag(o.IsGuest),
			BillingAddress:      s.FormatAddress(o.BillingAddress, true),
			ShippingAddress:     s.FormatAddress(o.ShippingAddress, true),
		},
	}, nil
}

// IsGuestVariable returns the standalone isGuest variable for o.
func IsGuestVariable(o *order.Order) event.GuestVariable {
	if o == nil {
		return event.GuestVariable{}
	}

	return event.GuestVariable{IsGuest: guestFlag(o.IsGuest)}
}

func guestFlag(isGuest bool) int {
	if isGuest {
		return 1
	}

	return 0
}

func formatCreatedDate(o *order.Order) string {
	if o.CreatedAt.IsZero() {
		return ""
	}

	return o.CreatedAt.UTC().Format(event.CreatedDateLayout)
}

type noopMedia struct{}

func (noopMedia) SmallImageURL(orderitem.Product) string { return "" }

type noopTags struct{}

func (noopTags) Tags(orderitem.Product) []string { return nil }

type noopCountries struct{}

func (noopCountries) Resolve(code string) (country.Info, error) {
	return country.Info{Code: country.Code(code), Name: code}, nil
}
