package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/services"
)

// CreateRobotCommandHandler registers a new robot. Admins only.
type CreateRobotCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewCreateRobotCommandHandler(uowFactory UoWFactory) CreateRobotCommandHandler {
	return CreateRobotCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

func (h CreateRobotCommandHandler) Handle(ctx context.Context, cmd CreateRobotCommand) (*robot.Robot, error) {
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

	created, err := robot.NewRobot(cmd.RobotID(), cmd.Name())
	if err != nil {
		return nil, err
	}

	if err = uow.RobotRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
