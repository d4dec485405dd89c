package memory

import (
	"context"
	"fmt"
	"sort"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store   *Store
	journal *journal
	tracker aggregateTracker
}

// NewOrderRepository returns a repository whose changes are final immediately.
// Units of work build their own, journaled instances.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store, tracker: noopTracker{}}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := aggregate.ID()
	if _, ok := r.store.orders[id]; ok {
		return errs.NewValueIsInvalidErrorWithCause("order", fmt.Errorf("order %s already exists", id))
	}
	r.store.orders[id] = orderFromDomain(aggregate)
	r.journal.record(func() { delete(r.store.orders, id) })

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *OrderRepository) AttachProof(ctx context.Context, id kernel.UUID, proof string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.orders[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	aggregate, err := rec.toDomain()
	if err != nil {
		return err
	}
	if err = aggregate.AttachProof(proof); err != nil {
		return err
	}

	r.store.orders[id] = orderFromDomain(aggregate)
	r.journal.record(func() {
		if cur, ok := r.store.orders[id]; ok && cur.proof == proof {
			cur.proof = rec.proof
			r.store.orders[id] = cur
		}
	})

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.toDomain()
}

func (r *OrderRepository) Transition(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
	actor *kernel.UUID,
) (*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	prev, ok := r.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	aggregate, err := prev.toDomain()
	if err != nil {
		return nil, err
	}
	if err = aggregate.Transition(expected, next, actor); err != nil {
		return nil, err
	}

	r.store.orders[id] = orderFromDomain(aggregate)
	r.journal.record(func() {
		if cur, ok := r.store.orders[id]; ok && cur.status == next {
			r.store.orders[id] = prev
		}
	})

	r.tracker.TrackAggregate(id, aggregate)
	return aggregate, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.list(ctx, func(orderRecord) bool { return true })
}

func (r *OrderRepository) ListByStudent(ctx context.Context, studentID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, func(rec orderRecord) bool { return rec.studentID.IsEqual(studentID) })
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.list(ctx, func(rec orderRecord) bool { return rec.status == status })
}

func (r *OrderRepository) list(ctx context.Context, keep func(orderRecord) bool) ([]*order.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	records := make([]orderRecord, 0, len(r.store.orders))
	for _, rec := range r.store.orders {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if !records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].createdAt.After(records[j].createdAt)
		}
		return records[i].id.String() < records[j].id.String()
	})

	orders := make([]*order.Order, 0, len(records))
	for _, rec := range records {
		o, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
