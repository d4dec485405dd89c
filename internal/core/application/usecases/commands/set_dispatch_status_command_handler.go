package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
)

// SetDispatchStatusCommandHandler applies a dispatcher's status change.
//
// ASSIGNED runs the regular assignment on the dispatch surface. DELIVERING and
// DELIVERED move the order from whatever status it has now, following the
// transition table strictly. Reaching DELIVERED releases the bound robot in
// the same unit of work.
type SetDispatchStatusCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewSetDispatchStatusCommandHandler(uowFactory UoWFactory) SetDispatchStatusCommandHandler {
	return SetDispatchStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h SetDispatchStatusCommandHandler) Handle(ctx context.Context, cmd SetDispatchStatusCommand) (*order.Order, error) {
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
	if err = h.policy.CanSetDispatchStatus(actor); err != nil {
		return nil, err
	}

	var updated *order.Order
	if cmd.Status() == order.Assigned {
		updated, err = assignRobot(ctx, uow, h.policy, actor, cmd.OrderID(), services.DispatchSurface)
	} else {
		updated, err = h.advance(ctx, uow, cmd)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (h SetDispatchStatusCommandHandler) advance(ctx context.Context, uow UoW, cmd SetDispatchStatusCommand) (*order.Order, error) {
	orderRepo := uow.OrderRepository()

	current, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	updated, err := orderRepo.Transition(ctx, cmd.OrderID(), current.Status(), cmd.Status(), nil)
	if err != nil {
		return nil, err
	}

	if updated.Status() == order.Delivered {
		if _, err = uow.RobotRepository().ReleaseByOrder(ctx, updated.ID()); err != nil {
			return nil, err
		}
	}

	return updated, nil
}
