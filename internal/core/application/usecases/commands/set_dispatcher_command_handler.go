package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/domain/services"
)

// SetDispatcherCommandHandler lets admins manage the dispatcher role.
type SetDispatcherCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

func NewSetDispatcherCommandHandler(uowFactory UoWFactory) SetDispatcherCommandHandler {
	return SetDispatcherCommandHandler{uowFactory: uowFactory, policy: services.NewAccessPolicy()}
}

func (h SetDispatcherCommandHandler) Handle(ctx context.Context, cmd SetDispatcherCommand) (*user.User, error) {
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

	userRepo := uow.UserRepository()

	actor, err := userRepo.Get(ctx, cmd.ActorID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanManageUsers(actor); err != nil {
		return nil, err
	}

	target, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	target.SetDispatcher(cmd.IsDispatcher())
	if err = userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
