package commands

import (
	"context"

	"campusdelivery/internal/core/domain/services"
)

// DeleteRobotCommandHandler removes idle robots. A busy robot returns robot.ErrRobotBusy.
type DeleteRobotCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewDeleteRobotCommandHandler(uowFactory UoWFactory) DeleteRobotCommandHandler {
	return DeleteRobotCommandHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h DeleteRobotCommandHandler) Handle(ctx context.Context, cmd DeleteRobotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if err = h.policy.CanManageRobots(actor); err != nil {
		return err
	}

	if err = uow.RobotRepository().Delete(ctx, cmd.RobotID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
