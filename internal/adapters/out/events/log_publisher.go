package events

import (
	"context"
	"log/slog"
	"time"

	"campusdelivery/internal/core/domain/model/order"
)

// LogOrderPublisher writes order changes to the application log. It is used
// when no Kafka broker is configured.
type LogOrderPublisher struct {
	logger *slog.Logger
}

func NewLogOrderPublisher(logger *slog.Logger) *LogOrderPublisher {
	return &LogOrderPublisher{logger: logger.With("component", "order_events")}
}

func (p *LogOrderPublisher) PublishOrderChanged(ctx context.Context, o *order.Order) error {
	event := NewOrderChangedEvent(o, time.Now())
	attrs := []any{
		"order_id", event.OrderID,
		"student_id", event.StudentID,
		"status", event.Status,
	}
	if event.AssigneeID != nil {
		attrs = append(attrs, "assignee_id", *event.AssigneeID)
	}
	p.logger.InfoContext(ctx, "order changed", attrs...)
	return nil
}
