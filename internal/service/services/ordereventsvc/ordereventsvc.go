package ordereventsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/metrics"
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/order"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName      = "marketing-svc/ordereventsvc"
	sendConcurrency = 3
)

// ErrNoPublisher is returned by send operations when no publisher is set.
var ErrNoPublisher = errors.New("no publisher configured")

type orderRepository interface {
	GetByIncrementID(ctx context.Context, incrementID string) (*order.Order, error)
}

type payloadSerializer interface {
	Serialize(o *order.Order) (event.OrderEventPayload, error)
}

type publisher interface {
	Send(ctx context.Context, e event.Event) error
}

type settingsGateway interface {
	OrderOverride() (string, bool)
	Validate(ctx context.Context) (bool, string)
}

// OrderEventService builds purchase payloads and hands purchase events to
// the publisher.
type OrderEventService struct {
	orders     orderRepository
	serializer payloadSerializer
	publisher  publisher
	settings   settingsGateway
	metrics    *metrics.Registry
	tracer     trace.Tracer
	newID      func() string
	now        func() time.Time
}

// option is a function that configures the OrderEventService.
type option func(*OrderEventService)

// MustNewOrderEventService creates a new OrderEventService. It panics when
// the order repository or the serializer is missing.
func MustNewOrderEventService(opts ...option) *OrderEventService {
	s := &OrderEventService{
		tracer: otel.Tracer(tracerName),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.orders == nil || s.serializer == nil {
		panic("order event service requires an order repository and a serializer")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo orderRepository) option {
	return func(s *OrderEventService) {
		s.orders = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSerializer(ser payloadSerializer) option {
	return func(s *OrderEventService) {
		s.serializer = ser
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPublisher(p publisher) option {
	return func(s *OrderEventService) {
		s.publisher = p
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettingsGateway(g settingsGateway) option {
	return func(s *OrderEventService) {
		s.settings = g
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(reg *metrics.Registry) option {
	return func(s *OrderEventService) {
		s.metrics = reg
	}
}

// BuildPayload loads the order and serializes it. order.ErrOrderNotFound is
// passed through wrapped.
func (s *OrderEventService) BuildPayload(ctx context.Context, incrementID string) (event.OrderEventPayload, error) {
	ctx, span := s.tracer.Start(ctx, "OrderEventService.BuildPayload",
		trace.WithAttributes(attribute.String("order.increment_id", incrementID)))
	defer span.End()

	_, payload, err := s.load(ctx, incrementID)
	if err != nil {
		failSpan(span, err)

		return event.OrderEventPayload{}, err
	}

	return payload, nil
}

func (s *OrderEventService) load(ctx context.Context, incrementID string) (*order.Order, event.OrderEventPayload, error) {
	start := s.now()

	o, err := s.orders.GetByIncrementID(ctx, incrementID)
	if err != nil {
		return nil, event.OrderEventPayload{}, fmt.Errorf("failed to load order %s: %w", incrementID, err)
	}

	payload, err := s.serializer.Serialize(o)
	if err != nil {
		return nil, event.OrderEventPayload{}, fmt.Errorf("failed to serialize order %s: %w", incrementID, err)
	}

	if s.metrics != nil {
		s.metrics.PayloadsBuilt.Inc()
		s.metrics.SerializeSeconds.Observe(time.Since(start).Seconds())
	}

	return o, payload, nil
}

// SendPurchaseEvent publishes a purchase event for one order and returns
// the new event ID.
func (s *OrderEventService) SendPurchaseEvent(ctx context.Context, incrementID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "OrderEventService.SendPurchaseEvent",
		trace.WithAttributes(attribute.String("order.increment_id", incrementID)))
	defer span.End()

	id, err := s.sendPurchaseEvent(ctx, incrementID)
	if err != nil {
		failSpan(span, err)
		s.observeSend(metrics.ResultFailure)

		return "", err
	}
	s.observeSend(metrics.ResultSuccess)
	span.SetAttributes(attribute.String("event.id", id))

	return id, nil
}

func (s *OrderEventService) sendPurchaseEvent(ctx context.Context, incrementID string) (string, error) {
	if s.publisher == nil {
		return "", ErrNoPublisher
	}

	o, payload, err := s.load(ctx, incrementID)
	if err != nil {
		return "", err
	}

	e := event.Event{
		ID:        s.newID(),
		Name:      event.NamePurchase,
		OrderID:   o.IncrementID,
		Email:     o.CustomerEmail,
		Vars:      payload,
		CreatedAt: s.now().UTC(),
	}
	if s.settings != nil {
		if template, ok := s.settings.OrderOverride(); ok {
			e.Template = template
		}
	}

	if err := s.publisher.Send(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to publish purchase event",
			"increment_id", incrementID,
			"event_id", e.ID,
			"error", err,
		)

		return "", fmt.Errorf("failed to publish purchase event for order %s: %w", incrementID, err)
	}

	slog.InfoContext(ctx, "Purchase event queued", "increment_id", incrementID, "event_id", e.ID)

	return e.ID, nil
}

// SendPurchaseEvents publishes one event per order, a few at a time. The
// returned IDs follow the order of incrementIDs. The first failure aborts
// the batch.
func (s *OrderEventService) SendPurchaseEvents(ctx context.Context, incrementIDs []string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "OrderEventService.SendPurchaseEvents",
		trace.WithAttributes(attribute.Int("orders.count", len(incrementIDs))))
	defer span.End()

	ids := make([]string, len(incrementIDs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(sendConcurrency)
	for i, incrementID := range incrementIDs {
		i, incrementID := i, incrementID
		g.Go(func() error {
			id, err := s.SendPurchaseEvent(gCtx, incrementID)
			if err != nil {
				return err
			}
			ids[i] = id

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		failSpan(span, err)

		return nil, err
	}

	return ids, nil
}

// ValidateSettings checks the configured credentials against the platform.
func (s *OrderEventService) ValidateSettings(ctx context.Context) (bool, string) {
	ctx, span := s.tracer.Start(ctx, "OrderEventService.ValidateSettings")
	defer span.End()

	if s.settings == nil {
		return false, "settings are not configured"
	}

	ok, msg := s.settings.Validate(ctx)
	span.SetAttributes(attribute.Bool("settings.valid", ok))
	if s.metrics != nil {
		if ok {
			s.metrics.SettingsValid.Set(1)
		} else {
			s.metrics.SettingsValid.Set(0)
		}
	}

	return ok, msg
}

func (s *OrderEventService) observeSend(result string) {
	if s.metrics != nil {
		s.metrics.EventsSent.WithLabelValues(result).Inc()
	}
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
