package commands

import (
	"errors"
	"strings"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrUpdateRobotCommandIsNotConstructed = errors.New(
	"UpdateRobotCommand must be created via NewUpdateRobotCommand constructor",
)

// UpdateRobotCommand replaces the editable fields of a robot: its name and
// the informational next available time. A nil time clears it.
type UpdateRobotCommand struct {
	actorID         kernel.UUID
	robotID         kernel.UUID
	name            string
	nextAvailableAt *time.Time

	guard guard.ConstructorGuard
}

func NewUpdateRobotCommand(
	actorID, robotID kernel.UUID,
	name string,
	nextAvailableAt *time.Time,
) (UpdateRobotCommand, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(actorID.Validate(), robotID.Validate(), nameErr); err != nil {
		return UpdateRobotCommand{}, err
	}

	cmd := UpdateRobotCommand{
		actorID: actorID,
		robotID: robotID,
		name:    name,
		guard:   guard.NewConstructorGuard(),
	}
	if nextAvailableAt != nil {
		at := *nextAvailableAt
		cmd.nextAvailableAt = &at
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRobotCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRobotCommandIsNotConstructed)
}

func (c UpdateRobotCommand) ActorID() kernel.UUID { return c.actorID }

func (c UpdateRobotCommand) RobotID() kernel.UUID { return c.robotID }

func (c UpdateRobotCommand) Name() string { return c.name }

func (c UpdateRobotCommand) NextAvailableAt() *time.Time {
	if c.nextAvailableAt == nil {
		return nil
	}
	at := *c.nextAvailableAt
	return &at
}
