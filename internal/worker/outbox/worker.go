package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/marketing/internal/metrics"
	"github.com/spf13/viper"
)

// broker delivers a serialized event to the message bus.
type broker interface {
	Publish(ctx context.Context, exchange, routingKey, contentType string, body []byte) error
}

// Worker processes messages from the outbox table.
type Worker struct {
	outboxRepo    ioutboxrepo.IOutboxRepository
	broker        broker
	metrics       *metrics.Registry
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	now           func() time.Time
	stopCh        chan struct{}
}

type option func(*Worker)

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(reg *metrics.Registry) option {
	return func(w *Worker) {
		w.metrics = reg
	}
}

// NewWorker creates a new outbox worker.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	b broker,
	opts ...option,
) *Worker {
	pollIntervalSeconds := viper.GetInt("publisher.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("publisher.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("publisher.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	w := &Worker{
		outboxRepo:    outboxRepo,
		broker:        b,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		now:           time.Now,
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start begins processing messages from the outbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// backoff grows as retryInterval * 2^attempt.
func (w *Worker) backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt)) * float64(w.retryInterval))
}

// processMessages delivers one batch of pending messages.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}
	if w.metrics != nil {
		w.metrics.OutboxPending.Set(float64(len(messages)))
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		err := w.broker.Publish(ctx, msg.ExchangeName, msg.RoutingKey, msg.ContentType, msg.Payload)
		if err != nil {
			w.observe(metrics.ResultFailure)

			newRetryCount := msg.RetryCount + 1
			nextRetryAt := w.now().Add(w.backoff(newRetryCount))

			slog.Warn("Failed to publish message from outbox, will retry",
				"outbox_id", msg.ID,
				"event_id", msg.EventID,
				"retry_count", newRetryCount,
				"next_retry", nextRetryAt,
				"error", err,
			)

			if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
				slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
			}

			continue
		}

		w.observe(metrics.ResultSuccess)
		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete message from outbox after successful publish",
				"outbox_id", msg.ID,
				"error", err,
			)

			continue
		}
		slog.Debug("Message published and removed from outbox", "outbox_id", msg.ID, "event_id", msg.EventID)
	}
}

func (w *Worker) observe(result string) {
	if w.metrics != nil {
		w.metrics.OutboxPublished.WithLabelValues(result).Inc()
	}
}
