package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/services"
)

// UpdateRobotCommandHandler renames a robot and sets its next available time.
// Availability and the carried order are never touched here.
type UpdateRobotCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewUpdateRobotCommandHandler(uowFactory UoWFactory) UpdateRobotCommandHandler {
	return UpdateRobotCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h UpdateRobotCommandHandler) Handle(ctx context.Context, cmd UpdateRobotCommand) (*robot.Robot, error) {
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

	robotRepo := uow.RobotRepository()
	existing, err := robotRepo.Get(ctx, cmd.RobotID())
	if err != nil {
		return nil, err
	}

	if err = existing.Rename(cmd.Name()); err != nil {
		return nil, err
	}
	existing.SetNextAvailableAt(cmd.NextAvailableAt())

	if err = robotRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}
