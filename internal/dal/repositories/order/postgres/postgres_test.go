package postgresrepo

import (
	"testing"

	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOrderQuery(t *testing.T) {
	query, args, err := selectOrderQuery("100000042").ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM orders WHERE increment_id = $1")
	assert.Equal(t, []any{"100000042"}, args)
}

func TestSelectItemsQuery_OrdersByID(t *testing.T) {
	query, args, err := selectItemsQuery(7).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM order_items WHERE order_id = $1 ORDER BY id ASC")
	assert.Contains(t, query, "product_options")
	assert.Equal(t, []any{int64(7)}, args)
}

func TestSelectPaymentAndAddressQueries(t *testing.T) {
	query, _, err := selectPaymentQuery(7).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT method, cc_type, base_amount_ordered FROM order_payments WHERE order_id = $1", query)

	query, _, err = selectAddressesQuery(7).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM order_addresses WHERE order_id = $1")
}

func TestOrderItemDal_ToModel(t *testing.T) {
	row := OrderItemDal{
		ID:             3,
		OrderID:        7,
		SKU:            "tee",
		QtyOrdered:     decimal.RequireFromString("2.0000"),
		Price:          decimal.RequireFromString("19.99"),
		ProductType:    orderitem.TypeConfigurable,
		Categories:     []string{"Tops"},
		ProductOptions: []byte(`{"simple_sku":"tee-red-m","attributes_info":[{"label":"Color","value":"Red"}]}`),
	}

	item, err := row.ToModel()
	require.NoError(t, err)

	assert.Equal(t, "tee-red-m", item.Options.SimpleSKU)
	assert.Equal(t, []orderitem.OptionAttribute{{Label: "Color", Value: "Red"}}, item.Options.AttributesInfo)
	assert.True(t, item.IsConfigurable())
	assert.Equal(t, []string{"Tops"}, item.Product.Categories)
}

func TestOrderItemDal_ToModel_EmptyAndBrokenOptions(t *testing.T) {
	item, err := (&OrderItemDal{ID: 1}).ToModel()
	require.NoError(t, err)
	assert.Nil(t, item.Options.AttributesInfo)

	_, err = (&OrderItemDal{ID: 2, ProductOptions: []byte(`{`)}).ToModel()
	assert.Error(t, err)
}

func TestAttachAddresses(t *testing.T) {
	var o order.Order
	attachAddresses(&o, []AddressDal{
		{AddressType: addressTypeShipping, City: "Berlin"},
		{AddressType: addressTypeBilling, City: "Paris"},
		{AddressType: "other", City: "Nowhere"},
	})

	require.NotNil(t, o.BillingAddress)
	require.NotNil(t, o.ShippingAddress)
	assert.Equal(t, "Paris", o.BillingAddress.City)
	assert.Equal(t, "Berlin", o.ShippingAddress.City)
}
