package queries

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
)

// ListOrdersQueryHandler reads orders through the repositories of a fresh,
// non-transactional unit of work. Results are newest first.
type ListOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	policy     services.AccessPolicy
}

func NewListOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	actor, err := uow.UserRepository().Get(ctx, query.ActorID())
	if err != nil {
		return nil, err
	}

	var orders []*order.Order
	if h.policy.CanListAll(actor) {
		orders, err = uow.OrderRepository().ListAll(ctx)
	} else {
		orders, err = uow.OrderRepository().ListByStudent(ctx, actor.ID())
	}
	if err != nil {
		return nil, err
	}

	return orderResponses(orders), nil
}
