package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/marketing/internal/dal/postgres"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/corray333/backend-labs/marketing/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// OrderRepository reads orders together with their items, payment and addresses.
type OrderRepository struct {
	client *postgres.Client
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(client *postgres.Client) *OrderRepository {
	return &OrderRepository{
		client: client,
	}
}

// GetByIncrementID loads the order with the given public number.
// It returns order.ErrOrderNotFound when no such order exists.
func (r *OrderRepository) GetByIncrementID(ctx context.Context, incrementID string) (*order.Order, error) {
	query, args, err := selectOrderQuery(incrementID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	var row OrderDal
	if err := r.client.Pool().QueryRow(ctx, query, args...).Scan(row.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", order.ErrOrderNotFound, incrementID)
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	o := row.ToModel()

	if o.Items, err = r.getItems(ctx, o.ID); err != nil {
		return nil, err
	}
	if o.Payment, err = r.getPayment(ctx, o.ID); err != nil {
		return nil, err
	}
	addresses, err := r.getAddresses(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	attachAddresses(o, addresses)

	return o, nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int64) ([]orderitem.LineItem, error) {
	query, args, err := selectItemsQuery(orderID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build items query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make([]orderitem.LineItem, 0)
	for rows.Next() {
		var row OrderItemDal
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		item, err := row.ToModel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *OrderRepository) getPayment(ctx context.Context, orderID int64) (*order.Payment, error) {
	query, args, err := selectPaymentQuery(orderID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build payment query: %w", err)
	}

	var row PaymentDal
	err = r.client.Pool().QueryRow(ctx, query, args...).Scan(&row.Method, &row.CcType, &row.BaseAmountOrdered)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order payment: %w", err)
	}

	return row.ToModel(), nil
}

func (r *OrderRepository) getAddresses(ctx context.Context, orderID int64) ([]AddressDal, error) {
	query, args, err := selectAddressesQuery(orderID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build addresses query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order addresses: %w", err)
	}
	defer rows.Close()

	var addresses []AddressDal
	for rows.Next() {
		var row AddressDal
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order address: %w", err)
		}
		addresses = append(addresses, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order addresses: %w", err)
	}

	return addresses, nil
}

func selectOrderQuery(incrementID string) sq.SelectBuilder {
	return psql.Select(
		"id",
		"increment_id",
		"customer_name",
		"customer_email",
		"status",
		"state",
		"grand_total",
		"subtotal",
		"shipping_amount",
		"discount_amount",
		"tax_amount",
		"coupon_code",
		"shipping_description",
		"is_guest",
		"created_at",
	).
		From("orders").
		Where(sq.Eq{"increment_id": incrementID})
}

func selectItemsQuery(orderID int64) sq.SelectBuilder {
	return psql.Select(
		"id",
		"order_id",
		"sku",
		"name",
		"qty_ordered",
		"price",
		"product_type",
		"product_id",
		"product_url",
		"small_image",
		"meta_keywords",
		"categories",
		"product_options",
	).
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC")
}

func selectPaymentQuery(orderID int64) sq.SelectBuilder {
	return psql.Select("method", "cc_type", "base_amount_ordered").
		From("order_payments").
		Where(sq.Eq{"order_id": orderID})
}

func selectAddressesQuery(orderID int64) sq.SelectBuilder {
	return psql.Select(
		"address_type",
		"first_name",
		"last_name",
		"company",
		"street",
		"city",
		"region",
		"region_code",
		"postcode",
		"country_id",
		"telephone",
		"email",
	).
		From("order_addresses").
		Where(sq.Eq{"order_id": orderID})
}
