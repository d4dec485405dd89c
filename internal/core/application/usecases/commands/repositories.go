// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, role check, transaction
// management and persistence.
package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RobotRepoFactory provides access to the robot pool within a transaction.
	RobotRepoFactory interface {
		RobotRepository() ports.RobotRepository
	}

	// UserRepoFactory provides access to user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// UoW manages transactions across orders, robots and users.
	// Every command loads its actor through the same unit of work.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   robotRepo := uow.RobotRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		RobotRepoFactory
		UserRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

var (
	// ErrOrderNotFound is the single outcome of a proof whose order is missing
	// or belongs to another student.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusNotAllowed is returned for dispatch statuses other than
	// ASSIGNED, DELIVERING and DELIVERED.
	ErrStatusNotAllowed = errors.New("status not allowed")
)
