package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
)

type ListDispatchOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	policy     services.AccessPolicy
}

func NewListDispatchOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListDispatchOrdersQueryHandler {
	return ListDispatchOrdersQueryHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h ListDispatchOrdersQueryHandler) Handle(ctx context.Context, query ListDispatchOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	actor, err := uow.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanListByStatus(actor); err != nil {
		return nil, err
	}

	var orders []*order.Order
	if query.Status() == order.Unknown {
		orders, err = uow.OrderRepository().ListAll(ctx)
	} else {
		orders, err = uow.OrderRepository().ListByStatus(ctx, query.Status())
	}
	if err != nil {
		return nil, err
	}

	return orderResponses(orders), nil
}
