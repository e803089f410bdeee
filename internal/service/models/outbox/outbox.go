package outbox

import (
	"time"
)

// Message is a serialized event waiting to be delivered to the broker.
type Message struct {
	ID           int64
	EventID      string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
