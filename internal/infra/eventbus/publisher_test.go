package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-ResourceBooking/pkg/logger"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	messages []published
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func reservation() *domain.Reservation {
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	return &domain.Reservation{
		ID:         7,
		Domain:     "vehicle",
		ResourceID: "car-1",
		StartDate:  date,
		StartTime:  "08:00",
		EndDate:    date,
		EndTime:    "12:00",
		Requester:  domain.Requester{Name: "Ivan", Contact: "ivan@example.com"},
		Status:     domain.StatusActive,
	}
}

func TestPublisher_SendConfirmation(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(&fakeConn{}, ch, DefaultExchange, logger.NewNop())

	require.NoError(t, p.SendConfirmation(context.Background(), reservation()))
	require.Len(t, ch.messages, 1)

	msg := ch.messages[0]
	assert.Equal(t, DefaultExchange, msg.exchange)
	assert.Equal(t, "reservation.confirmed.vehicle", msg.key)
	assert.Equal(t, "application/json", msg.msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.msg.DeliveryMode)
	assert.Equal(t, "reservation-7", msg.msg.MessageId)

	var body notifier.Confirmation
	require.NoError(t, json.Unmarshal(msg.msg.Body, &body))
	assert.Equal(t, int64(7), body.ReservationID)
	assert.Equal(t, "car-1", body.ResourceID)
	assert.Equal(t, "2025-01-06", body.Date)
}

func TestPublisher_SendConfirmationError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newPublisher(&fakeConn{}, ch, DefaultExchange, logger.NewNop())

	err := p.SendConfirmation(context.Background(), reservation())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	conn := &fakeConn{}
	p := newPublisher(conn, ch, DefaultExchange, logger.NewNop())

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)
}
