package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
	"github.com/m04kA/SMC-ResourceBooking/internal/integrations/notifier"
)

const (
	// DefaultExchange topic exchange для событий бронирования
	DefaultExchange = "resource_booking.events"

	routingKeyConfirmed = "reservation.confirmed."
)

// Publisher отправляет подтверждения бронирований в RabbitMQ
// Сервис уведомлений читает их из очереди, привязанной к exchange
type Publisher struct {
	conn     io.Closer
	channel  Channel
	exchange string
	log      Logger
	mu       sync.Mutex
}

// NewPublisher подключается к брокеру и объявляет exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("RabbitMQ publisher connected, exchange=%s", exchange)
	return newPublisher(conn, ch, exchange, log), nil
}

func newPublisher(conn io.Closer, ch Channel, exchange string, log Logger) *Publisher {
	return &Publisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log,
	}
}

// SendConfirmation публикует подтверждение с ключом reservation.confirmed.<domain>
func (p *Publisher) SendConfirmation(ctx context.Context, reservation *domain.Reservation) error {
	payload, err := json.Marshal(notifier.NewConfirmation(reservation))
	if err != nil {
		return fmt.Errorf("%w: encode reservation_id=%d: %v", ErrPublish, reservation.ID, err)
	}

	routingKey := routingKeyConfirmed + reservation.Domain

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    fmt.Sprintf("reservation-%d", reservation.ID),
			Body:         payload,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish confirmation, routing_key=%s: %v", routingKey, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	p.log.Debug("Confirmation published, routing_key=%s, size=%d", routingKey, len(payload))
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Warn("Error closing channel: %v", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}

	p.log.Info("RabbitMQ publisher closed")
	return nil
}
