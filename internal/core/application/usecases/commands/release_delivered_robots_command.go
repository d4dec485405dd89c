package commands

import (
	"errors"

	"campusdelivery/internal/pkg/guard"
)

var ErrReleaseDeliveredRobotsCommandIsNotConstructed = errors.New(
	"ReleaseDeliveredRobotsCommand must be created via NewReleaseDeliveredRobotsCommand constructor",
)

// ReleaseDeliveredRobotsCommand triggers the sweep that frees robots still
// bound to delivered or deleted orders.
//
// Example:
//
//	cmd := NewReleaseDeliveredRobotsCommand()
//	released, err := handler.Handle(ctx, cmd)
type ReleaseDeliveredRobotsCommand struct {
	guard guard.ConstructorGuard
}

func NewReleaseDeliveredRobotsCommand() ReleaseDeliveredRobotsCommand {
	return ReleaseDeliveredRobotsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ReleaseDeliveredRobotsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseDeliveredRobotsCommandIsNotConstructed)
}
