package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/robot"
)

// RobotRepository is the robot pool. AcquireIdle is the only way to take a
// robot out of the pool, and it is atomic with respect to concurrent callers.
type RobotRepository interface {
	Add(ctx context.Context, aggregate *robot.Robot) error

	Get(ctx context.Context, id kernel.UUID) (*robot.Robot, error)

	// List returns all robots ordered by name.
	List(ctx context.Context) ([]*robot.Robot, error)

	// Update stores the name and next available time. Availability is only
	// changed through AcquireIdle, Bind and the Release methods.
	Update(ctx context.Context, aggregate *robot.Robot) error

	// Delete removes an idle robot. A robot carrying an order returns robot.ErrRobotBusy.
	Delete(ctx context.Context, id kernel.UUID) error

	// AcquireIdle picks the first idle robot by name, then id, and binds it to
	// orderID in one critical section. robot.ErrNoRobotAvailable when none is idle.
	AcquireIdle(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error)

	// Bind makes sure robotID carries orderID. It is a no-op when already bound
	// and returns robot.ErrRobotBusy when the robot carries another order.
	Bind(ctx context.Context, robotID, orderID kernel.UUID) error

	// Release frees a robot. Releasing an idle robot is a no-op.
	Release(ctx context.Context, robotID kernel.UUID) (*robot.Robot, error)

	// ReleaseByOrder frees the robot carrying orderID and returns it, or nil when no
	// robot carries the order.
	ReleaseByOrder(ctx context.Context, orderID kernel.UUID) (*robot.Robot, error)

	// ListBusy returns every robot that is carrying an order.
	ListBusy(ctx context.Context) ([]*robot.Robot, error)
}
