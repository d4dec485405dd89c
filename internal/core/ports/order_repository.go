package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every read-then-write happens inside the repository under a record lock,
// so callers never update an order they read earlier.
type OrderRepository interface {
	// Add persists a new Pending order without a proof.
	Add(ctx context.Context, aggregate *order.Order) error

	// AttachProof stores the proof of an existing order. A second call returns
	// order.ErrAlreadyHasProof; an unknown id returns an ObjectNotFoundError.
	AttachProof(ctx context.Context, id kernel.UUID, proof string) error

	// Get retrieves an order by id or returns an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Transition locks the order, moves it from expected to next and returns the
	// updated aggregate. It returns order.ErrStaleState when the stored status is
	// not expected and order.ErrInvalidTransition when the edge is not allowed.
	Transition(ctx context.Context, id kernel.UUID, expected, next order.Status, actor *kernel.UUID) (*order.Order, error)

	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ListByStudent returns the orders created by studentID, newest first.
	ListByStudent(ctx context.Context, studentID kernel.UUID) ([]*order.Order, error)

	// ListByStatus returns the orders currently in status, newest first.
	ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
