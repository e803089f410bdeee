package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/marketing/internal/service/models/event"
	"github.com/corray333/backend-labs/marketing/internal/service/models/outbox"
)

const contentTypeJSON = "application/json"

// OutboxPublisher records events in the outbox. The outbox worker performs
// the actual delivery.
type OutboxPublisher struct {
	repo       ioutboxrepo.IOutboxRepository
	exchange   string
	routingKey string
	maxRetries int
	now        func() time.Time
}

type option func(*OutboxPublisher)

//goland:noinspection GoExportedFuncWithUnexportedType
func WithExchange(exchange string) option {
	return func(p *OutboxPublisher) {
		p.exchange = exchange
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithRoutingKey(key string) option {
	return func(p *OutboxPublisher) {
		p.routingKey = key
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMaxRetries(n int) option {
	return func(p *OutboxPublisher) {
		if n > 0 {
			p.maxRetries = n
		}
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewOutboxPublisher(repo ioutboxrepo.IOutboxRepository, opts ...option) *OutboxPublisher {
	p := &OutboxPublisher{
		repo:       repo,
		exchange:   "marketing.events",
		routingKey: "order.purchase",
		maxRetries: 5,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Send serializes e and stores it for delivery.
func (p *OutboxPublisher) Send(ctx context.Context, e event.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", e.ID, err)
	}

	now := p.now()
	msg := outbox.Message{
		EventID:      e.ID,
		ExchangeName: p.exchange,
		RoutingKey:   p.routingKey,
		Payload:      body,
		ContentType:  contentTypeJSON,
		MaxRetries:   p.maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}
	if err := p.repo.Insert(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue event %s: %w", e.ID, err)
	}

	return nil
}
