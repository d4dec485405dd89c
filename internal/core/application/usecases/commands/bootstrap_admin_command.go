package commands

import (
	"errors"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrBootstrapAdminCommandIsNotConstructed = errors.New(
	"BootstrapAdminCommand must be created via NewBootstrapAdminCommand constructor",
)

// BootstrapAdminCommand makes sure the configured admin account exists.
// It runs once at startup, before any request is served.
type BootstrapAdminCommand struct {
	userID   kernel.UUID
	username string

	guard guard.ConstructorGuard
}

func NewBootstrapAdminCommand(userID kernel.UUID, username string) (BootstrapAdminCommand, error) {
	var usernameErr error
	if strings.TrimSpace(username) == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}

	if err := errors.Join(userID.Validate(), usernameErr); err != nil {
		return BootstrapAdminCommand{}, err
	}

	return BootstrapAdminCommand{userID: userID, username: username, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c BootstrapAdminCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapAdminCommandIsNotConstructed)
}

func (c BootstrapAdminCommand) UserID() kernel.UUID { return c.userID }

func (c BootstrapAdminCommand) Username() string { return c.username }
