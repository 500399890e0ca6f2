package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/lyng148/online-auction/internal/logger"
)

// Publisher publishes order-handoff events to RabbitMQ. Errors are logged
// and returned so callers can ignore failures without interrupting winner
// resolution; the broker being down must never block an auction close.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher bound to the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishAuctionWon publishes an AuctionWonEvent to the auction.won queue.
// The queue is declared durable and the message persistent so a resolved
// sale survives a broker restart. A fresh connection per publish keeps the
// publisher free of shared channel state; resolution volume is one message
// per auction close, so the dial cost is irrelevant.
func (p *Publisher) PublishAuctionWon(ctx context.Context, event AuctionWonEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.Error("rabbitmq dial failed", map[string]any{"error": err.Error()})
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("rabbitmq channel open failed", map[string]any{"error": err.Error()})
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		AuctionWonQueue, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		logger.Error("rabbitmq queue declare failed", map[string]any{"error": err.Error()})
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		logger.Error("marshal auction.won event failed", map[string]any{"error": err.Error()})
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		AuctionWonQueue, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		pub,
	); err != nil {
		logger.Error("rabbitmq publish failed", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}
