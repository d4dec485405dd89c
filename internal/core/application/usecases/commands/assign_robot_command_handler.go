package commands

import (
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/domain/services"
)

// AssignRobotCommandHandler binds an idle robot to a pending order.
//
// The sequence is AcquireIdle, Transition(PENDING→ASSIGNED), Bind. Losing a
// race on the order after a robot was acquired releases that robot before the
// error is returned and the unit of work is rolled back.
//
// Example:
//
//	handler := NewAssignRobotCommandHandler(uowFactory)
//	assigned, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, robot.ErrNoRobotAvailable):
//	    log.Println("All robots are busy")
//	case errors.Is(err, order.ErrStaleState):
//	    log.Println("Someone else assigned the order first")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	}
type AssignRobotCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewAssignRobotCommandHandler(uowFactory UoWFactory) AssignRobotCommandHandler {
	return AssignRobotCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle returns the order in its ASSIGNED state.
func (h AssignRobotCommandHandler) Handle(ctx context.Context, cmd AssignRobotCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}

	assigned, err := assignRobot(ctx, uow, h.policy, actor, cmd.OrderID(), cmd.Surface())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assigned, nil
}

// assignRobot runs the assignment inside an open unit of work. It is shared
// with the dispatch status command, where ASSIGNED means the same thing.
func assignRobot(
	ctx context.Context,
	uow UoW,
	policy services.AccessPolicy,
	actor *user.User,
	orderID kernel.UUID,
	surface services.AssignSurface,
) (*order.Order, error) {
	if err := policy.CanAssign(actor, surface); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	robotRepo := uow.RobotRepository()

	current, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status() != order.Pending {
		return nil, fmt.Errorf("%w: order %s is %s", order.ErrInvalidTransition, orderID, current.Status())
	}

	acquired, err := robotRepo.AcquireIdle(ctx, orderID)
	if err != nil {
		return nil, err
	}

	actorID := actor.ID()
	assigned, err := orderRepo.Transition(ctx, orderID, order.Pending, order.Assigned, &actorID)
	if err != nil {
		return nil, compensate(ctx, uow, acquired.ID(), err)
	}

	if err = robotRepo.Bind(ctx, acquired.ID(), orderID); err != nil {
		return nil, compensate(ctx, uow, acquired.ID(), err)
	}

	return assigned, nil
}

// compensate puts an acquired robot back into the pool and returns cause,
// joined with the release error if the release failed too.
func compensate(ctx context.Context, uow UoW, robotID kernel.UUID, cause error) error {
	if _, err := uow.RobotRepository().Release(ctx, robotID); err != nil {
		return errors.Join(cause, fmt.Errorf("release robot %s: %w", robotID, err))
	}
	return cause
}
