package memory

import (
	"context"
	"fmt"
	"sort"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/pkg/errs"
)

// RobotRepository implements ports.RobotRepository over a Store.
type RobotRepository struct {
	store   *Store
	journal *journal
	tracker aggregateTracker
}

func NewRobotRepository(store *Store) *RobotRepository {
	return &RobotRepository{store: store, tracker: noopTracker{}}
}

func (r *RobotRepository) Add(ctx context.Context, aggregate *robot.Robot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := aggregate.ID()
	if _, ok := r.store.robots[id]; ok {
		return errs.NewValueIsInvalidErrorWithCause("robot", fmt.Errorf("robot %s already exists", id))
	}
	r.store.robots[id] = robotFromDomain(aggregate)
	r.journal.record(func() { delete(r.store.robots, id) })

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *RobotRepository) Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.robots[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("robot", id.String())
	}
	return rec.toDomain()
}

func (r *RobotRepository) List(ctx context.Context) ([]*robot.Robot, error) {
	return r.list(ctx, func(robotRecord) bool { return true })
}

func (r *RobotRepository) ListBusy(ctx context.Context) ([]*robot.Robot, error) {
	return r.list(ctx, func(rec robotRecord) bool { return rec.currentOrder != nil })
}

func (r *RobotRepository) Update(ctx context.Context, aggregate *robot.Robot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := aggregate.ID()
	prev, ok := r.store.robots[id]
	if !ok {
		return errs.NewObjectNotFoundError("robot", id.String())
	}
	cur := prev
	cur.name = aggregate.Name()
	cur.nextAvailableAt = aggregate.NextAvailableAt()
	r.store.robots[id] = cur
	r.journal.record(func() {
		if now, ok := r.store.robots[id]; ok {
			now.name = prev.name
			now.nextAvailableAt = prev.nextAvailableAt
			r.store.robots[id] = now
		}
	})

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *RobotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.robots[id]
	if !ok {
		return errs.NewObjectNotFoundError("robot", id.String())
	}
	aggregate, err := rec.toDomain()
	if err != nil {
		return err
	}
	if err = aggregate.CanBeDeleted(); err != nil {
		return err
	}

	delete(r.store.robots, id)
	r.journal.record(func() {
		if _, exists := r.store.robots[id]; !exists {
			r.store.robots[id] = rec
		}
	})
	return nil
}

func (r *RobotRepository) AcquireIdle(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var candidates []robotRecord
	for _, rec := range r.store.robots {
		if rec.currentOrder == nil {
			candidates = append(candidates, rec)
		}
	}
	if len(candidates) == 0 {
		return nil, robot.ErrNoRobotAvailable
	}
	sortByName(candidates)

	return r.bindLocked(candidates[0], orderID)
}

func (r *RobotRepository) Bind(ctx context.Context, robotID, orderID kernel.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.robots[robotID]
	if !ok {
		return errs.NewObjectNotFoundError("robot", robotID.String())
	}
	if rec.carries(orderID) {
		return nil
	}
	_, err := r.bindLocked(rec, orderID)
	return err
}

func (r *RobotRepository) Release(ctx context.Context, robotID kernel.UUID) (*robot.Robot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.robots[robotID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("robot", robotID.String())
	}
	return r.releaseLocked(rec)
}

func (r *RobotRepository) ReleaseByOrder(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rec := range r.store.robots {
		if rec.carries(orderID) {
			return r.releaseLocked(rec)
		}
	}
	return nil, nil
}

func (r *RobotRepository) bindLocked(rec robotRecord, orderID kernel.UUID) (*robot.Robot, error) {
	for id, other := range r.store.robots {
		if !id.IsEqual(rec.id) && other.carries(orderID) {
			return nil, fmt.Errorf("%w: order %s is already carried by another robot", order.ErrStaleState, orderID)
		}
	}

	aggregate, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	if err = aggregate.Bind(orderID); err != nil {
		return nil, err
	}

	id := aggregate.ID()
	r.store.robots[id] = robotFromDomain(aggregate)
	r.journal.record(func() {
		if cur, ok := r.store.robots[id]; ok && cur.carries(orderID) {
			cur.currentOrder = nil
			r.store.robots[id] = cur
		}
	})

	r.tracker.TrackAggregate(id, aggregate)
	return aggregate, nil
}

func (r *RobotRepository) releaseLocked(rec robotRecord) (*robot.Robot, error) {
	aggregate, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	aggregate.Release()

	id := aggregate.ID()
	r.store.robots[id] = robotFromDomain(aggregate)
	if prevOrder := rec.currentOrder; prevOrder != nil {
		r.journal.record(func() {
			if cur, ok := r.store.robots[id]; ok && cur.currentOrder == nil {
				cur.currentOrder = prevOrder
				r.store.robots[id] = cur
			}
		})
	}

	r.tracker.TrackAggregate(id, aggregate)
	return aggregate, nil
}

func (r *RobotRepository) list(ctx context.Context, keep func(robotRecord) bool) ([]*robot.Robot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	records := make([]robotRecord, 0, len(r.store.robots))
	for _, rec := range r.store.robots {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	r.store.mu.RUnlock()

	sortByName(records)

	robots := make([]*robot.Robot, 0, len(records))
	for _, rec := range records {
		rb, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		robots = append(robots, rb)
	}
	return robots, nil
}

func sortByName(records []robotRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].name != records[j].name {
			return records[i].name < records[j].name
		}
		return records[i].id.String() < records[j].id.String()
	})
}
