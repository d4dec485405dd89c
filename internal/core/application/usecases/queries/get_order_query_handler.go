package queries

import (
	"context"

	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
)

type GetOrderQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	policy     services.AccessPolicy
}

func NewGetOrderQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	actor, err := uow.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return OrderResponse{}, err
	}

	found, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}
	if err = h.policy.CanViewOrder(actor, found); err != nil {
		return OrderResponse{}, err
	}

	return NewOrderResponse(found), nil
}
