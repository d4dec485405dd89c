package queries

import (
	"context"

	"campusdelivery/internal/core/ports"
)

type ListRobotsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListRobotsQueryHandler(uowFactory ports.UnitOfWorkFactory) ListRobotsQueryHandler {
	return ListRobotsQueryHandler{uowFactory: uowFactory}
}

func (h ListRobotsQueryHandler) Handle(ctx context.Context, query ListRobotsQuery) ([]RobotResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if _, err := uow.UserRepository().Get(ctx, query.ActorID()); err != nil {
		return nil, err
	}

	robots, err := uow.RobotRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RobotResponse, 0, len(robots))
	for _, r := range robots {
		out = append(out, NewRobotResponse(r))
	}
	return out, nil
}
