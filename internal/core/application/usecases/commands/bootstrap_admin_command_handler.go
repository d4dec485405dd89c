package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/pkg/errs"
)

// BootstrapAdminCommandHandler creates the admin user, or adds the admin role
// to an existing user with that id. Running it twice changes nothing.
type BootstrapAdminCommandHandler struct {
	uowFactory UoWFactory
}

func NewBootstrapAdminCommandHandler(uowFactory UoWFactory) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{uowFactory: uowFactory}
}

func (h BootstrapAdminCommandHandler) Handle(ctx context.Context, cmd BootstrapAdminCommand) error {
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

	userRepo := uow.UserRepository()

	existing, err := userRepo.Get(ctx, cmd.UserID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		roles, rolesErr := user.NewRoles(user.Admin)
		if rolesErr != nil {
			return rolesErr
		}
		admin, newErr := user.NewUser(cmd.UserID(), cmd.Username(), roles)
		if newErr != nil {
			return newErr
		}
		if err = userRepo.Add(ctx, admin); err != nil {
			return err
		}
	case err != nil:
		return err
	case existing.Has(user.Admin):
		return nil
	default:
		promoted, newErr := user.NewUser(existing.ID(), existing.Username(), existing.Roles().With(user.Admin))
		if newErr != nil {
			return newErr
		}
		if err = userRepo.Update(ctx, promoted); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
