package commands

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a student's request for a new delivery.
// The actor becomes the owner of the order.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(studentID, orderID, order.Details{
//	    PackageType:      "box",
//	    Weight:           "2kg",
//	    PickupBuilding:   "Library",
//	    DeliveryBuilding: "Lab 4",
//	    DeliverySpeed:    "standard",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	orderID kernel.UUID
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids and order details. All problems are
// reported together.
func NewCreateOrderCommand(actorID, orderID kernel.UUID, details order.Details) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}

	c.details = details
	return nil
}
