package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/services"
)

// ReleaseRobotCommandHandler puts a robot back into the pool.
type ReleaseRobotCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewReleaseRobotCommandHandler(uowFactory UoWFactory) ReleaseRobotCommandHandler {
	return ReleaseRobotCommandHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h ReleaseRobotCommandHandler) Handle(ctx context.Context, cmd ReleaseRobotCommand) (*robot.Robot, error) {
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
	if err = h.policy.CanManageRobots(actor); err != nil {
		return nil, err
	}

	released, err := uow.RobotRepository().Release(ctx, cmd.RobotID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}
