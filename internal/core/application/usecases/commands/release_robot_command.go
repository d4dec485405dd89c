package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrReleaseRobotCommandIsNotConstructed = errors.New(
	"ReleaseRobotCommand must be created via NewReleaseRobotCommand constructor",
)

// ReleaseRobotCommand frees a robot by hand, for recovery after a lost
// delivery. The order it carried keeps its status.
type ReleaseRobotCommand struct {
	actorID kernel.UUID
	robotID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseRobotCommand(actorID, robotID kernel.UUID) (ReleaseRobotCommand, error) {
	if err := errors.Join(actorID.Validate(), robotID.Validate()); err != nil {
		return ReleaseRobotCommand{}, err
	}
	return ReleaseRobotCommand{actorID: actorID, robotID: robotID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReleaseRobotCommand) Validate() error {
	return c.guard.Validate(ErrReleaseRobotCommandIsNotConstructed)
}

func (c ReleaseRobotCommand) ActorID() kernel.UUID { return c.actorID }

func (c ReleaseRobotCommand) RobotID() kernel.UUID { return c.robotID }
