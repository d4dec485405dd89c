package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrDeleteRobotCommandIsNotConstructed = errors.New(
	"DeleteRobotCommand must be created via NewDeleteRobotCommand constructor",
)

// DeleteRobotCommand removes an idle robot from the pool.
type DeleteRobotCommand struct {
	actorID kernel.UUID
	robotID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRobotCommand(actorID, robotID kernel.UUID) (DeleteRobotCommand, error) {
	if err := errors.Join(actorID.Validate(), robotID.Validate()); err != nil {
		return DeleteRobotCommand{}, err
	}
	return DeleteRobotCommand{actorID: actorID, robotID: robotID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteRobotCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRobotCommandIsNotConstructed)
}

func (c DeleteRobotCommand) ActorID() kernel.UUID { return c.actorID }

func (c DeleteRobotCommand) RobotID() kernel.UUID { return c.robotID }
