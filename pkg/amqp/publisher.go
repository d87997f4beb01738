package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends persistent JSON messages to a topic exchange with
// publisher confirms. It is safe for concurrent use.
type Publisher struct {
	cfg  Config
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

// Connect dials the broker, declares the exchange, queue and binding, and
// returns a ready Publisher.
func Connect(ctx context.Context, cfg Config) (*Publisher, error) {
	var (
		conn    *amqp.Connection
		lastErr error
	)
	for i := range max(cfg.RetryAttempts, 1) {
		conn, lastErr = amqp.Dial(cfg.URL)
		if lastErr == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToConnect, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}
	if lastErr != nil {
		return nil, errors.Join(ErrFailedToConnect, lastErr)
	}

	p := &Publisher{cfg: cfg, conn: conn}
	if err := p.declare(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) declare() error {
	ch, err := p.conn.Channel()
	if err != nil {
		return errors.Join(ErrFailedToDeclare, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(p.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return errors.Join(ErrFailedToDeclare, fmt.Errorf("exchange %s: %w", p.cfg.Exchange, err))
	}
	if p.cfg.Queue == "" {
		return nil
	}
	q, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		return errors.Join(ErrFailedToDeclare, fmt.Errorf("queue %s: %w", p.cfg.Queue, err))
	}
	if err := ch.QueueBind(q.Name, p.cfg.BindingKey, p.cfg.Exchange, false, nil); err != nil {
		return errors.Join(ErrFailedToDeclare, fmt.Errorf("bind %s: %w", p.cfg.BindingKey, err))
	}
	return nil
}

// channel returns the shared confirm-mode channel, reopening it if closed.
// Callers must hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		return nil, ErrNotConnected
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errors.Join(ErrNotConnected, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, errors.Join(ErrNotConnected, err)
	}
	p.ch = ch
	return ch, nil
}

// Publish sends body to the exchange under routingKey and waits for the
// broker confirmation.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.PublishTimeout)
	defer cancel()

	conf, err := ch.PublishWithDeferredConfirmWithContext(ctx, p.cfg.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return errors.Join(ErrFailedToPublish, err)
	}

	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return errors.Join(ErrFailedToPublish, err)
	}
	if !acked {
		return ErrPublishNotAcked
	}
	return nil
}

// Healthcheck returns a readiness probe for the broker connection.
func (p *Publisher) Healthcheck() func(context.Context) error {
	return func(context.Context) error {
		if p.conn == nil || p.conn.IsClosed() {
			return ErrHealthcheckFailed
		}
		return nil
	}
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil && !p.ch.IsClosed() {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
