package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrSetDispatcherCommandIsNotConstructed = errors.New(
	"SetDispatcherCommand must be created via NewSetDispatcherCommand constructor",
)

// SetDispatcherCommand grants or revokes the dispatcher role.
type SetDispatcherCommand struct {
	actorID      kernel.UUID
	userID       kernel.UUID
	isDispatcher bool

	guard guard.ConstructorGuard
}

func NewSetDispatcherCommand(actorID, userID kernel.UUID, isDispatcher bool) (SetDispatcherCommand, error) {
	if err := errors.Join(actorID.Validate(), userID.Validate()); err != nil {
		return SetDispatcherCommand{}, err
	}

	return SetDispatcherCommand{
		actorID:      actorID,
		userID:       userID,
		isDispatcher: isDispatcher,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDispatcherCommand) Validate() error {
	return c.guard.Validate(ErrSetDispatcherCommandIsNotConstructed)
}

func (c SetDispatcherCommand) ActorID() kernel.UUID { return c.actorID }

func (c SetDispatcherCommand) UserID() kernel.UUID { return c.userID }

func (c SetDispatcherCommand) IsDispatcher() bool { return c.isDispatcher }
