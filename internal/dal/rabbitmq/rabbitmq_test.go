package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	exchanges []string
	sent      []published
	err       error
	closed    bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.exchanges = append(f.exchanges, name+":"+kind)

	return nil
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})

	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true

	return nil
}

func TestPublish(t *testing.T) {
	ch := &fakeChannel{}
	c := NewClientWithChannel(ch)

	require.NoError(t, c.Publish(context.Background(), "marketing.events", "order.purchase", "application/json", []byte(`{"a":1}`)))

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "marketing.events", ch.sent[0].exchange)
	assert.Equal(t, "order.purchase", ch.sent[0].key)
	assert.Equal(t, uint8(amqp.Persistent), ch.sent[0].msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.sent[0].msg.ContentType)
}

func TestPublish_Errors(t *testing.T) {
	c := NewClientWithChannel(&fakeChannel{err: errors.New("channel closed")})
	assert.ErrorContains(t, c.Publish(context.Background(), "x", "y", "", nil), "channel closed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewClientWithChannel(&fakeChannel{}).Publish(ctx, "x", "y", "", nil), context.Canceled)
}

func TestDeclareExchangeAndClose(t *testing.T) {
	ch := &fakeChannel{}
	c := NewClientWithChannel(ch)

	require.NoError(t, c.DeclareExchange(DeclareExchangeConfig{Name: "marketing.events", Kind: amqp.ExchangeTopic}))
	require.NoError(t, c.Close())

	assert.Equal(t, []string{"marketing.events:topic"}, ch.exchanges)
	assert.True(t, ch.closed)
}

func TestURL(t *testing.T) {
	viper.Set("rabbitmq.user", "guest")
	viper.Set("rabbitmq.password", "pw")
	viper.Set("rabbitmq.host", "rabbit")
	viper.Set("rabbitmq.port", 5672)
	t.Cleanup(viper.Reset)

	assert.Equal(t, "amqp://guest:pw@rabbit:5672/", URL())
}
