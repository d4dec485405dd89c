package robotrepo

import (
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRobotRepository stores robots in the "robots" table.
//
// AcquireIdle selects with FOR UPDATE SKIP LOCKED so that concurrent callers
// never wait on, or pick, the same idle robot.
type GormRobotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRobotRepository(db *gorm.DB, tracker aggregateTracker) *GormRobotRepository {
	return &GormRobotRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRobotRepository) Add(ctx context.Context, aggregate *robot.Robot) error {
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

func (r *GormRobotRepository) Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RobotDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("robot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRobotRepository) List(ctx context.Context) ([]*robot.Robot, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormRobotRepository) ListBusy(ctx context.Context) ([]*robot.Robot, error) {
	return r.find(r.db.WithContext(ctx).Where("current_order_id IS NOT NULL"))
}

func (r *GormRobotRepository) Update(ctx context.Context, aggregate *robot.Robot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	columns := map[string]any{
		"name":              dto.Name,
		"next_available_at": nil,
	}
	if dto.NextAvailableAt != nil {
		columns["next_available_at"] = *dto.NextAvailableAt
	}
	result := r.db.WithContext(ctx).Model(&RobotDTO{}).Where("id = ?", dto.ID).Updates(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("robot", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormRobotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, "id = ?", id.Bytes())
		if err != nil {
			return err
		}
		if aggregate == nil {
			return errs.NewObjectNotFoundError("robot", id.String())
		}
		if err = aggregate.CanBeDeleted(); err != nil {
			return err
		}
		return tx.Delete(&RobotDTO{}, "id = ?", id.Bytes()).Error
	})
}

func (r *GormRobotRepository) AcquireIdle(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var acquired *robot.Robot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto RobotDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("is_available = ?", true).
			Order("name").Order("id").
			Take(&dto).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return robot.ErrNoRobotAvailable
		}
		if err != nil {
			return err
		}

		aggregate, err := toDomain(dto)
		if err != nil {
			return err
		}
		if err = r.saveBinding(tx, aggregate, orderID); err != nil {
			return err
		}
		acquired = aggregate
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(acquired.ID(), acquired)
	return acquired, nil
}

func (r *GormRobotRepository) Bind(ctx context.Context, robotID, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, "id = ?", robotID.Bytes())
		if err != nil {
			return err
		}
		if aggregate == nil {
			return errs.NewObjectNotFoundError("robot", robotID.String())
		}
		if aggregate.IsCarrying(orderID) {
			return nil
		}
		if err = r.saveBinding(tx, aggregate, orderID); err != nil {
			return err
		}
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
		return nil
	})
}

func (r *GormRobotRepository) Release(ctx context.Context, robotID kernel.UUID) (*robot.Robot, error) {
	var released *robot.Robot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, "id = ?", robotID.Bytes())
		if err != nil {
			return err
		}
		if aggregate == nil {
			return errs.NewObjectNotFoundError("robot", robotID.String())
		}
		released = aggregate
		return r.saveRelease(tx, aggregate)
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

func (r *GormRobotRepository) ReleaseByOrder(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error) {
	var released *robot.Robot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		aggregate, err := r.lock(tx, "current_order_id = ?", orderID.Bytes())
		if err != nil || aggregate == nil {
			return err
		}
		released = aggregate
		return r.saveRelease(tx, aggregate)
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

func (r *GormRobotRepository) saveBinding(tx *gorm.DB, aggregate *robot.Robot, orderID kernel.UUID) error {
	if err := aggregate.Bind(orderID); err != nil {
		return err
	}
	dto := fromDomain(aggregate)
	err := tx.Model(&RobotDTO{}).Where("id = ?", dto.ID).Updates(bindingColumns(dto)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// current_order_id is unique: a concurrent assignment bound the order first
		return fmt.Errorf("%w: order %s is already carried by another robot", order.ErrStaleState, orderID)
	}
	return err
}

func (r *GormRobotRepository) saveRelease(tx *gorm.DB, aggregate *robot.Robot) error {
	aggregate.Release()
	dto := fromDomain(aggregate)
	if err := tx.Model(&RobotDTO{}).Where("id = ?", dto.ID).Updates(bindingColumns(dto)).Error; err != nil {
		return err
	}
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// lock selects one robot FOR UPDATE. It returns nil without error when no row matches.
func (r *GormRobotRepository) lock(tx *gorm.DB, query string, args ...any) (*robot.Robot, error) {
	var dto RobotDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormRobotRepository) find(query *gorm.DB) ([]*robot.Robot, error) {
	var dtos []RobotDTO
	if err := query.Order("name").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	robots := make([]*robot.Robot, 0, len(dtos))
	for _, dto := range dtos {
		rb, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		robots = append(robots, rb)
	}

	return robots, nil
}
