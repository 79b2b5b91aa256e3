package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes invite events to the broker. A nil Publisher or an
// empty URL disables publishing, so handlers can call Publish without
// caring whether a broker is configured.
type Publisher struct {
	URL string
	Log *slog.Logger
}

// NewPublisher returns a Publisher for the given broker URL. An empty
// URL yields a disabled publisher.
func NewPublisher(url string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{URL: url, Log: log}
}

// PublishInviteCreated sends an InviteCreatedEvent to the invite.created
// queue. Each call opens its own connection; invite creation is rare
// enough that a persistent channel is not worth its failure modes.
// Errors are logged and returned so callers can ignore them without
// interrupting the request flow.
func (p *Publisher) PublishInviteCreated(ctx context.Context, ev InviteCreatedEvent) error {
	if p == nil || p.URL == "" {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("amqp dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("amqp channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue so invites survive broker restarts.
	if _, err := ch.QueueDeclare(inviteQueueName, true, false, false, false, nil); err != nil {
		p.Log.Warn("amqp queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", inviteQueueName, false, false, pub); err != nil {
		p.Log.Warn("amqp publish failed", "err", err)
		return err
	}
	return nil
}
