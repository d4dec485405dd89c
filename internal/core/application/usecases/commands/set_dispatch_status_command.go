package commands

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"
)

var ErrSetDispatchStatusCommandIsNotConstructed = errors.New(
	"SetDispatchStatusCommand must be created via NewSetDispatchStatusCommand constructor",
)

// SetDispatchStatusCommand is a dispatcher moving an order along the board.
// Only ASSIGNED, DELIVERING and DELIVERED can be requested.
type SetDispatchStatusCommand struct {
	actorID kernel.UUID
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewSetDispatchStatusCommand parses the wire status name. PENDING and unknown
// names return ErrStatusNotAllowed.
func NewSetDispatchStatusCommand(actorID, orderID kernel.UUID, status string) (SetDispatchStatusCommand, error) {
	cmd := SetDispatchStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	target, statusErr := parseDispatchStatus(status)
	if err := errors.Join(
		actorID.Validate(),
		orderID.Validate(),
		statusErr,
	); err != nil {
		return SetDispatchStatusCommand{}, err
	}

	cmd.actorID = actorID
	cmd.orderID = orderID
	cmd.status = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDispatchStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDispatchStatusCommandIsNotConstructed)
}

func (c SetDispatchStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c SetDispatchStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetDispatchStatusCommand) Status() order.Status {
	return c.status
}

func parseDispatchStatus(s string) (order.Status, error) {
	status, err := order.ParseStatus(s)
	if err != nil {
		return order.Unknown, fmt.Errorf("%w: %q", ErrStatusNotAllowed, s)
	}
	switch status {
	case order.Assigned, order.Delivering, order.Delivered:
		return status, nil
	default:
		return order.Unknown, fmt.Errorf("%w: %s", ErrStatusNotAllowed, status)
	}
}
