// Package events is the PostgreSQL-backed event bus of the tracking context,
// built on Watermill's SQL transport.
//
// Repositories write events with PublishTx inside their business transaction
// (transactional outbox). Every worker instance subscribes with the same
// consumer group, so each message is handled once. A handler error is retried
// with exponential backoff; a message that still fails is moved to
// "<topic>.poison" and acknowledged, so one bad event cannot block its topic.
//
// Trace context travels in message metadata.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/hourglass/pkg/logger"
)

const (
	maxRetries      = 3
	retryBaseDelay  = time.Second
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "_forwarder_queue"
	forwarderGroup  = "forwarder-consumer"
	errBuffer       = 100

	// PoisonSuffix is appended to a topic to name its dead-letter topic.
	PoisonSuffix = ".poison"
	// MetadataPoisonReason carries the last handler error of a poisoned message.
	MetadataPoisonReason = "poison_reason"
)

// EventBus publishes and consumes events stored in PostgreSQL. It borrows the
// *sql.DB and never closes it.
type EventBus struct {
	db           *sql.DB
	log          logger.Logger
	wlog         watermill.LoggerAdapter
	publisher    message.Publisher
	subscriber   *watermillsql.Subscriber
	fwd          *forwarder.Forwarder
	useForwarder bool
	wg           sync.WaitGroup
}

// Options configures New.
type Options struct {
	// ConsumerGroup is shared by every instance of a service.
	ConsumerGroup string
	// UseForwarder routes publishes through a durable queue drained by the
	// daemon started with StartForwarder.
	UseForwarder bool
}

// New prepares a publisher and a subscriber on db. Watermill creates its
// tables on first use.
func New(db *sql.DB, opts Options, log logger.Logger) (*EventBus, error) {
	if db == nil {
		return nil, errors.New("events: nil db")
	}
	if opts.ConsumerGroup == "" {
		return nil, errors.New("events: consumer group is required")
	}

	q := &EventBus{db: db, log: log, wlog: &slogAdapter{log: log}, useForwarder: opts.UseForwarder}

	pub, err := q.newPublisher(db, true)
	if err != nil {
		return nil, err
	}
	sub, err := q.newSubscriber(opts.ConsumerGroup)
	if err != nil {
		_ = pub.Close()
		return nil, err
	}
	q.publisher = q.wrap(pub)
	q.subscriber = sub
	return q, nil
}

func (q *EventBus) newPublisher(conn watermillsql.ContextExecutor, autoInit bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(conn, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: autoInit,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (q *EventBus) newSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, q.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// wrap routes pub through the forwarder queue when forwarder mode is on.
func (q *EventBus) wrap(pub message.Publisher) message.Publisher {
	if !q.useForwarder {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// StartForwarder runs the daemon that moves messages from the forwarder queue
// to their target topics. It returns once the daemon is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.useForwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := q.newSubscriber(forwarderGroup)
	if err != nil {
		return err
	}
	targetPub, err := q.newPublisher(q.db, true)
	if err != nil {
		_ = fwdSub.Close()
		return err
	}
	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, q.wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
		}
	}()

	select {
	case <-fwd.Running():
		q.log.InfoContext(ctx, "events: forwarder running")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// PublishTx writes msgs on tx; they are delivered only if tx commits.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	// Tables exist once New has run, so the tx publisher skips schema setup.
	pub, err := q.newPublisher(tx, false)
	if err != nil {
		return err
	}
	injectTrace(ctx, msgs)
	if err := q.wrap(pub).Publish(topic, msgs...); err != nil {
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Publish sends msgs to topic outside any business transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTrace(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe consumes topic in the background until ctx is done or the bus is
// closed. handler runs with the publisher's trace restored.
//
// A message whose handler still fails after retries is published to
// topic+PoisonSuffix and acknowledged; the error is sent on the returned
// channel, which the caller must drain. If the poison publish fails too the
// message is nacked for redelivery.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)
		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			herr := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, q.log)
			if herr == nil {
				msg.Ack()
				continue
			}
			if perr := q.poison(msgCtx, topic, msg, herr); perr != nil {
				msg.Nack()
				herr = errors.Join(herr, perr)
			} else {
				msg.Ack()
			}
			select {
			case errCh <- fmt.Errorf("events: %s message %s: %w", topic, msg.UUID, herr):
			default:
				q.log.ErrorContext(msgCtx, "events: error channel full", "topic", topic, "error", herr)
			}
		}
	}()
	return errCh, nil
}

func (q *EventBus) poison(ctx context.Context, topic string, msg *message.Message, cause error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	dead := msg.Copy()
	dead.Metadata.Set(MetadataPoisonReason, cause.Error())
	if err := q.Publish(ctx, topic+PoisonSuffix, dead); err != nil {
		return err
	}
	q.log.WarnContext(ctx, "events: message poisoned", "topic", topic, "message_id", msg.UUID, "error", cause)
	return nil
}

// retryWithBackoff calls handler up to attempts times, doubling the delay
// after each failure. It returns the last handler error wrapped, or ctx.Err()
// when ctx ends while waiting.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler func(context.Context, *message.Message) error,
	attempts int,
	delay time.Duration,
	log logger.Logger,
) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == attempts {
			return fmt.Errorf("handler failed after %d attempts: %w", attempts, err)
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// Ping checks the database the bus is stored in.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits up to 30s for in-flight handlers and closes
// the publisher. The database stays open.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
