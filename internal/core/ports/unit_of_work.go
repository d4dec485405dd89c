package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one transaction. Repositories
// obtained after Begin run inside the transaction. After a successful Commit
// the unit of work publishes an order-changed event for every order it touched.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	RobotRepository() RobotRepository

	UserRepository() UserRepository
}
