// Package postgres provides the GORM-based Unit of Work and the schema migration
// for the order, robot and user tables.
//
// Key Features:
//   - Transaction management across the three repositories
//   - Row locks taken by the repositories are held until Commit or Rollback
//   - Order-changed events are published only after a successful Commit
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	robot, err := uow.RobotRepository().AcquireIdle(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	if _, err = uow.OrderRepository().Transition(ctx, orderID, order.Pending, order.Assigned, &actor); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; do not share it between goroutines
//   - Keep transactions short: QR rendering and decoding run outside them
package postgres

import (
	"context"
	"log/slog"

	"campusdelivery/internal/adapters/out/postgres/orderrepo"
	"campusdelivery/internal/adapters/out/postgres/robotrepo"
	"campusdelivery/internal/adapters/out/postgres/userrepo"
	"campusdelivery/internal/adapters/out/tracking"
	"campusdelivery/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory. publisher may be nil when events are disabled.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.OrderEventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher, logger: logger}
}

// Create produces a new UnitOfWork with its own transaction state and tracker.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the aggregates
// changed inside it.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
	tracker   tracking.Tracker
}

// Begin initiates a new database transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction, then publishes the tracked orders.
// It returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracker.Reset()
		return err
	}

	uow.tracker.Flush(ctx, uow.publisher, uow.logger)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
// After Commit it returns gorm.ErrInvalidTransaction, which makes it safe to defer.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracker.Reset()
	return err
}

// OrderRepository runs inside the current transaction if one is active,
// otherwise on the main connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), &uow.tracker)
}

func (uow *GormUnitOfWork) RobotRepository() ports.RobotRepository {
	return robotrepo.NewGormRobotRepository(uow.conn(), &uow.tracker)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// Migrate creates or updates the tables used by the repositories.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &robotrepo.RobotDTO{}, &userrepo.UserDTO{})
}
