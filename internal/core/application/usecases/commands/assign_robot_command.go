package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrAssignRobotCommandIsNotConstructed = errors.New(
	"AssignRobotCommand must be created via NewAssignRobotCommand constructor",
)

// AssignRobotCommand asks for the first idle robot to be bound to a pending order.
// The surface records which entry point the request came from, since teachers
// and dispatchers assign through different endpoints.
//
// Example:
//
//	cmd, err := NewAssignRobotCommand(teacherID, orderID, services.TeacherSurface)
//	assigned, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, robot.ErrNoRobotAvailable) {
//	    // ask the client to retry later
//	}
type AssignRobotCommand struct {
	actorID kernel.UUID
	orderID kernel.UUID
	surface services.AssignSurface

	guard guard.ConstructorGuard
}

func NewAssignRobotCommand(actorID, orderID kernel.UUID, surface services.AssignSurface) (AssignRobotCommand, error) {
	cmd := AssignRobotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		orderID.Validate(),
		validateSurface(surface),
	); err != nil {
		return AssignRobotCommand{}, err
	}

	cmd.actorID = actorID
	cmd.orderID = orderID
	cmd.surface = surface
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRobotCommand) Validate() error {
	return c.guard.Validate(ErrAssignRobotCommandIsNotConstructed)
}

func (c AssignRobotCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c AssignRobotCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignRobotCommand) Surface() services.AssignSurface {
	return c.surface
}

func validateSurface(surface services.AssignSurface) error {
	if surface != services.TeacherSurface && surface != services.DispatchSurface {
		return errs.NewValueIsInvalidError("surface")
	}
	return nil
}
