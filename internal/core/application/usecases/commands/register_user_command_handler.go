package commands

import (
	"context"

	"campusdelivery/internal/core/domain/model/user"
)

// RegisterUserCommandHandler stores a new user. A taken username returns
// ports.ErrUsernameTaken.
type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterUserCommandHandler(uowFactory UoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var roles []user.Role
	if cmd.IsStudent() {
		roles = append(roles, user.Student)
	}
	if cmd.IsTeacher() {
		roles = append(roles, user.Teacher)
	}
	roleSet, err := user.NewRoles(roles...)
	if err != nil {
		return nil, err
	}

	registered, err := user.NewUser(cmd.UserID(), cmd.Username(), roleSet)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, registered); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return registered, nil
}
