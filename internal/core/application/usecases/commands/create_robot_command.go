package commands

import (
	"errors"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrCreateRobotCommandIsNotConstructed = errors.New(
	"CreateRobotCommand must be created via NewCreateRobotCommand constructor",
)

// CreateRobotCommand adds an idle robot to the pool.
type CreateRobotCommand struct {
	actorID kernel.UUID
	robotID kernel.UUID
	name    string

	guard guard.ConstructorGuard
}

func NewCreateRobotCommand(actorID, robotID kernel.UUID, name string) (CreateRobotCommand, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(actorID.Validate(), robotID.Validate(), nameErr); err != nil {
		return CreateRobotCommand{}, err
	}

	return CreateRobotCommand{
		actorID: actorID,
		robotID: robotID,
		name:    name,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRobotCommand) Validate() error {
	return c.guard.Validate(ErrCreateRobotCommandIsNotConstructed)
}

func (c CreateRobotCommand) ActorID() kernel.UUID { return c.actorID }

func (c CreateRobotCommand) RobotID() kernel.UUID { return c.robotID }

func (c CreateRobotCommand) Name() string { return c.name }
