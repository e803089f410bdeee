package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts kafka.Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Client publishes outbox messages to Kafka. The exchange name is used as
// the topic and the routing key as the message key.
type Client struct {
	writer messageWriter
}

// NewClient creates a synchronous writer for a comma-separated broker list.
func NewClient(bootstrap string) *Client {
	var brokers []string
	for _, a := range strings.Split(bootstrap, ",") {
		if a = strings.TrimSpace(a); a != "" {
			brokers = append(brokers, a)
		}
	}

	slog.Info("Kafka writer configured", "brokers", brokers)

	return &Client{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}}
}

// NewClientWith wraps an existing writer.
func NewClientWith(w messageWriter) *Client {
	return &Client{writer: w}
}

func (c *Client) Publish(ctx context.Context, exchange, routingKey, contentType string, body []byte) error {
	err := c.writer.WriteMessages(ctx, kafka.Message{
		Topic:   exchange,
		Key:     []byte(routingKey),
		Value:   body,
		Headers: []kafka.Header{{Key: "content-type", Value: []byte(contentType)}},
	})
	if err != nil {
		return fmt.Errorf("failed to write kafka message to %s: %w", exchange, err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.writer.Close()
}
