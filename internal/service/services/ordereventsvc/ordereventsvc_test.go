package ordereventsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/metrics"
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/corray333/backend-labs/marketing/internal/service/serializer"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders map[string]*order.Order

func (f fakeOrders) GetByIncrementID(_ context.Context, id string) (*order.Order, error) {
	o, ok := f[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}

	return o, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []event.Event
	failOn string
}

func (f *fakePublisher) Send(_ context.Context, e event.Event) error {
	if e.OrderID == f.failOn {
		return errors.New("outbox unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)

	return nil
}

type fakeSettings struct {
	template string
	valid    bool
	message  string
}

func (f fakeSettings) OrderOverride() (string, bool) { return f.template, f.template != "" }

func (f fakeSettings) Validate(context.Context) (bool, string) { return f.valid, f.message }

func testOrder(id string) *order.Order {
	return &order.Order{
		ID:            1,
		IncrementID:   id,
		CustomerEmail: "jane@example.com",
		CreatedAt:     time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		GrandTotal:    decimal.RequireFromString("10.00"),
		Subtotal:      decimal.RequireFromString("10.00"),
	}
}

func newService(t *testing.T, orders fakeOrders, pub *fakePublisher, settings settingsGateway, reg *metrics.Registry) *OrderEventService {
	t.Helper()
	n := 0
	var mu sync.Mutex
	s := MustNewOrderEventService(
		WithOrderRepository(orders),
		WithSerializer(serializer.NewSerializer()),
		WithPublisher(pub),
		WithSettingsGateway(settings),
		WithMetrics(reg),
	)
	s.newID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++

		return fmt.Sprintf("evt-%d", n)
	}
	s.now = func() time.Time { return time.Date(2024, 2, 3, 5, 0, 0, 0, time.UTC) }

	return s
}

func TestMustNewOrderEventService_PanicsWithoutDeps(t *testing.T) {
	assert.Panics(t, func() { MustNewOrderEventService() })
}

func TestBuildPayload(t *testing.T) {
	reg := metrics.NewRegistry()
	s := newService(t, fakeOrders{"100": testOrder("100")}, &fakePublisher{}, fakeSettings{}, reg)

	payload, err := s.BuildPayload(context.Background(), "100")
	require.NoError(t, err)

	assert.Equal(t, int64(1), payload.Order.ID)
	assert.Equal(t, "2024-02-03 04:05:06", payload.Order.CreatedDate)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.PayloadsBuilt))
}

func TestBuildPayload_NotFound(t *testing.T) {
	s := newService(t, fakeOrders{}, &fakePublisher{}, fakeSettings{}, nil)

	_, err := s.BuildPayload(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestSendPurchaseEvent_WithTemplate(t *testing.T) {
	pub := &fakePublisher{}
	reg := metrics.NewRegistry()
	s := newService(t, fakeOrders{"100": testOrder("100")}, pub, fakeSettings{template: "receipt"}, reg)

	id, err := s.SendPurchaseEvent(context.Background(), "100")
	require.NoError(t, err)
	assert.Equal(t, "evt-1", id)

	require.Len(t, pub.events, 1)
	e := pub.events[0]
	assert.Equal(t, event.NamePurchase, e.Name)
	assert.Equal(t, "100", e.OrderID)
	assert.Equal(t, "jane@example.com", e.Email)
	assert.Equal(t, "receipt", e.Template)
	assert.Equal(t, float64(10), e.Vars.Order.Total)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.EventsSent.WithLabelValues(metrics.ResultSuccess)))
}

func TestSendPurchaseEvent_NoTemplateAndFailures(t *testing.T) {
	pub := &fakePublisher{failOn: "200"}
	reg := metrics.NewRegistry()
	s := newService(t, fakeOrders{"100": testOrder("100"), "200": testOrder("200")}, pub, fakeSettings{}, reg)

	_, err := s.SendPurchaseEvent(context.Background(), "100")
	require.NoError(t, err)
	assert.Empty(t, pub.events[0].Template)

	_, err = s.SendPurchaseEvent(context.Background(), "200")
	assert.ErrorContains(t, err, "outbox unavailable")

	_, err = s.SendPurchaseEvent(context.Background(), "300")
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	assert.Equal(t, float64(2), testutil.ToFloat64(reg.EventsSent.WithLabelValues(metrics.ResultFailure)))
}

func TestSendPurchaseEvent_NoPublisher(t *testing.T) {
	s := MustNewOrderEventService(
		WithOrderRepository(fakeOrders{"100": testOrder("100")}),
		WithSerializer(serializer.NewSerializer()),
	)

	_, err := s.SendPurchaseEvent(context.Background(), "100")
	assert.ErrorIs(t, err, ErrNoPublisher)
}

func TestSendPurchaseEvents_KeepsInputOrder(t *testing.T) {
	orders := fakeOrders{}
	ids := []string{"1", "2", "3", "4", "5"}
	for _, id := range ids {
		orders[id] = testOrder(id)
	}
	pub := &fakePublisher{}
	s := newService(t, orders, pub, fakeSettings{}, nil)

	eventIDs, err := s.SendPurchaseEvents(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, eventIDs, len(ids))

	byOrder := map[string]string{}
	for _, e := range pub.events {
		byOrder[e.OrderID] = e.ID
	}
	for i, id := range ids {
		assert.Equal(t, byOrder[id], eventIDs[i])
	}

	sorted := append([]string(nil), eventIDs...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"evt-1", "evt-2", "evt-3", "evt-4", "evt-5"}, sorted)
}

func TestSendPurchaseEvents_FailsOnFirstError(t *testing.T) {
	s := newService(t, fakeOrders{"1": testOrder("1")}, &fakePublisher{}, fakeSettings{}, nil)

	ids, err := s.SendPurchaseEvents(context.Background(), []string{"1", "missing"})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.Nil(t, ids)
}

func TestValidateSettings(t *testing.T) {
	reg := metrics.NewRegistry()
	s := newService(t, fakeOrders{}, &fakePublisher{}, fakeSettings{valid: true, message: "Successfully Validated!"}, reg)

	ok, msg := s.ValidateSettings(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "Successfully Validated!", msg)
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.SettingsValid))

	bare := MustNewOrderEventService(WithOrderRepository(fakeOrders{}), WithSerializer(serializer.NewSerializer()))
	ok, _ = bare.ValidateSettings(context.Background())
	assert.False(t, ok)
}
