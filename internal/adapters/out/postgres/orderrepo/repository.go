package orderrepo

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository stores orders in the "orders" table.
//
// Read-then-write operations (AttachProof, Transition) lock the row with
// SELECT ... FOR UPDATE inside a transaction. When the repository already runs
// on a unit-of-work transaction the inner transaction becomes a savepoint, so
// the lock is held until the unit of work ends.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) AttachProof(ctx context.Context, id kernel.UUID, proof string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, id)
		if err != nil {
			return err
		}
		if err = aggregate.AttachProof(proof); err != nil {
			return err
		}

		if err = tx.Model(&OrderDTO{}).
			Where("id = ?", id.Bytes()).
			Update("proof", aggregate.Proof()).Error; err != nil {
			return err
		}

		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
		return nil
	})
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) Transition(
	ctx context.Context,
	id kernel.UUID,
	expected, next order.Status,
	actor *kernel.UUID,
) (*order.Order, error) {
	var updated *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, id)
		if err != nil {
			return err
		}
		if err = aggregate.Transition(expected, next, actor); err != nil {
			return err
		}

		dto := fromDomain(aggregate)
		columns := map[string]any{"status": dto.Status}
		if dto.AssigneeID != nil {
			columns["assignee_id"] = *dto.AssigneeID
		}
		if err = tx.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(columns).Error; err != nil {
			return err
		}

		updated = aggregate
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(updated.ID(), updated)
	return updated, nil
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormOrderRepository) ListByStudent(ctx context.Context, studentID kernel.UUID) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("student_id = ?", studentID.Bytes()))
}

func (r *GormOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", int(status)))
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) lock(tx *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
