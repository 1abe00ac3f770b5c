package helpers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp.Publishing
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key = exchange, key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error { f.closed = true; return nil }

func TestRabbitPublisher_PublishEvent(t *testing.T) {
	ch := &fakeChannel{}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	p := &RabbitPublisher{ch: ch, Queue: "leads.created", now: func() time.Time { return at }}

	require.NoError(t, p.PublishEvent(context.Background(), "lead.created", map[string]string{"id": "1"}))
	require.Len(t, ch.msgs, 1)

	msg := ch.msgs[0]
	assert.Equal(t, "", ch.exchange)
	assert.Equal(t, "leads.created", ch.key)
	assert.Equal(t, "lead.created", msg.Type)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.NotEmpty(t, msg.MessageId)
	assert.Equal(t, at.UTC(), msg.Timestamp)

	var body map[string]string
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "1", body["id"])

	p.Close()
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_Nil(t *testing.T) {
	var p *RabbitPublisher
	assert.Error(t, p.PublishEvent(context.Background(), "lead.created", nil))
	p.Close()
}
