package event

import "time"

// NamePurchase is the event name used for completed orders.
const NamePurchase = "purchase"

// Event is the envelope handed to the publisher.
type Event struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	OrderID   string            `json:"orderId"`
	Email     string            `json:"email"`
	Template  string            `json:"template,omitempty"`
	Vars      OrderEventPayload `json:"vars"`
	CreatedAt time.Time         `json:"createdAt"`
}
