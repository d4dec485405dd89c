// Package tracking records the aggregates a unit of work touched so that
// order-changed events can be published once the transaction has committed.
package tracking

import (
	"context"
	"log/slog"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// Tracker collects aggregates in the order they were modified.
// It is owned by a single unit of work and is not safe for concurrent use.
type Tracker struct {
	aggregates []trackedAggregate
}

// TrackAggregate registers an aggregate as modified.
func (t *Tracker) TrackAggregate(id kernel.UUID, aggregate any) {
	t.aggregates = append(t.aggregates, trackedAggregate{ID: id, Aggregate: aggregate})
}

// Reset forgets everything tracked so far, typically after a rollback.
func (t *Tracker) Reset() {
	t.aggregates = nil
}

// Orders returns the last tracked state of every order, in first-touched order.
func (t *Tracker) Orders() []*order.Order {
	index := make(map[kernel.UUID]int)
	var out []*order.Order
	for _, tracked := range t.aggregates {
		o, ok := tracked.Aggregate.(*order.Order)
		if !ok {
			continue
		}
		if i, seen := index[tracked.ID]; seen {
			out[i] = o
			continue
		}
		index[tracked.ID] = len(out)
		out = append(out, o)
	}
	return out
}

// Flush publishes one event per tracked order and resets the tracker.
// Publishing failures are logged and do not fail the caller: the commit has
// already happened.
func (t *Tracker) Flush(ctx context.Context, publisher ports.OrderEventPublisher, logger *slog.Logger) {
	orders := t.Orders()
	t.Reset()
	if publisher == nil {
		return
	}
	for _, o := range orders {
		if err := publisher.PublishOrderChanged(ctx, o); err != nil && logger != nil {
			logger.WarnContext(ctx, "failed to publish order change",
				"order_id", o.ID().String(),
				"status", o.Status().String(),
				"error", err,
			)
		}
	}
}
