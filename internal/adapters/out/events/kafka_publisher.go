// Package events publishes order-changed events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
)

const eventType = "order.changed"

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedEvent is the message body. Orders are keyed by id so that all
// changes of one order land on the same partition in commit order.
type OrderChangedEvent struct {
	OrderID    string    `json:"order_id"`
	StudentID  string    `json:"student_id"`
	AssigneeID *string   `json:"assignee_id,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaOrderPublisher implements ports.OrderEventPublisher.
type KafkaOrderPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

// WriterBatchTimeout bounds how long a write waits for a batch to fill. Events are
// written one at a time after commit, on the request path.
const WriterBatchTimeout = 10 * time.Millisecond

// NewKafkaWriter builds the writer used in production for topic on the given broker.
// Writes stay synchronous so publish failures reach the log, and each message is
// its own batch.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           WriterBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaOrderPublisher(writer MessageWriter) *KafkaOrderPublisher {
	return &KafkaOrderPublisher{writer: writer, now: time.Now}
}

// PublishOrderChanged writes one message describing the current state of o.
func (p *KafkaOrderPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	event := NewOrderChangedEvent(o, p.now())
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order changed event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to produce order changed event: %w", err)
	}
	return nil
}

// Close closes the underlying writer.
func (p *KafkaOrderPublisher) Close() error {
	return p.writer.Close()
}

// NewOrderChangedEvent snapshots o.
func NewOrderChangedEvent(o *order.Order, occurredAt time.Time) OrderChangedEvent {
	event := OrderChangedEvent{
		OrderID:    o.ID().String(),
		StudentID:  o.StudentID().String(),
		Status:     o.Status().String(),
		CreatedAt:  o.CreatedAt().UTC(),
		OccurredAt: occurredAt.UTC(),
	}
	if assignee := o.Assignee(); assignee != nil {
		id := assignee.String()
		event.AssigneeID = &id
	}
	return event
}
