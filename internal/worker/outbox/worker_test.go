package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/marketing/internal/metrics"
	"github.com/corray333/backend-labs/marketing/internal/service/models/outbox"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retry struct {
	id          int64
	count       int
	lastError   string
	nextRetryAt time.Time
}

type fakeRepo struct {
	pending []outbox.Message
	deleted []int64
	retries []retry
}

func (f *fakeRepo) Insert(context.Context, outbox.Message) error { return nil }

func (f *fakeRepo) GetPendingMessages(context.Context, int) ([]outbox.Message, error) {
	return f.pending, nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)

	return nil
}

func (f *fakeRepo) UpdateRetry(_ context.Context, id int64, count int, lastError string, next time.Time) error {
	f.retries = append(f.retries, retry{id: id, count: count, lastError: lastError, nextRetryAt: next})

	return nil
}

type fakeBroker struct {
	failFor map[string]error
	sent    []string
}

func (f *fakeBroker) Publish(_ context.Context, exchange, routingKey, _ string, body []byte) error {
	if err, ok := f.failFor[string(body)]; ok {
		return err
	}
	f.sent = append(f.sent, exchange+"/"+routingKey+"/"+string(body))

	return nil
}

func TestProcessMessages_DeletesDeliveredAndRetriesFailed(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{pending: []outbox.Message{
		{ID: 1, EventID: "a", ExchangeName: "ex", RoutingKey: "rk", Payload: []byte("ok")},
		{ID: 2, EventID: "b", ExchangeName: "ex", RoutingKey: "rk", Payload: []byte("bad"), RetryCount: 1},
	}}
	b := &fakeBroker{failFor: map[string]error{"bad": errors.New("unroutable")}}
	reg := metrics.NewRegistry()

	w := NewWorker(repo, b, WithMetrics(reg))
	w.now = func() time.Time { return now }
	w.processMessages(context.Background())

	assert.Equal(t, []string{"ex/rk/ok"}, b.sent)
	assert.Equal(t, []int64{1}, repo.deleted)
	require.Len(t, repo.retries, 1)
	assert.Equal(t, int64(2), repo.retries[0].id)
	assert.Equal(t, 2, repo.retries[0].count)
	assert.Equal(t, "unroutable", repo.retries[0].lastError)
	assert.Equal(t, now.Add(120*time.Second), repo.retries[0].nextRetryAt)

	assert.Equal(t, float64(1), testutil.ToFloat64(reg.OutboxPublished.WithLabelValues(metrics.ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(reg.OutboxPublished.WithLabelValues(metrics.ResultFailure)))
	assert.Equal(t, float64(2), testutil.ToFloat64(reg.OutboxPending))
}

func TestBackoff(t *testing.T) {
	w := NewWorker(&fakeRepo{}, &fakeBroker{})

	assert.Equal(t, 60*time.Second, w.backoff(1))
	assert.Equal(t, 240*time.Second, w.backoff(3))
}

func TestStart_StopsOnCancel(t *testing.T) {
	w := NewWorker(&fakeRepo{}, &fakeBroker{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
