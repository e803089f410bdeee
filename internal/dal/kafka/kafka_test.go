package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	fail   bool
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.msgs = append(f.msgs, msgs...)

	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true

	return nil
}

func TestPublish_MapsExchangeAndRoutingKey(t *testing.T) {
	w := &fakeWriter{}
	c := NewClientWith(w)

	require.NoError(t, c.Publish(context.Background(), "marketing.events", "order.purchase", "application/json", []byte(`{}`)))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "marketing.events", msg.Topic)
	assert.Equal(t, []byte("order.purchase"), msg.Key)
	assert.Equal(t, []byte(`{}`), msg.Value)
	assert.Equal(t, "content-type", msg.Headers[0].Key)
	assert.Equal(t, []byte("application/json"), msg.Headers[0].Value)
}

func TestPublish_Error(t *testing.T) {
	c := NewClientWith(&fakeWriter{fail: true})

	err := c.Publish(context.Background(), "t", "k", "application/json", nil)
	assert.ErrorContains(t, err, "broker down")
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewClientWith(w).Close())
	assert.True(t, w.closed)
}
