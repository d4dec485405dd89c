package commands

import (
	"errors"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand is an anonymous sign-up. Only the student and teacher
// roles can be chosen; dispatcher and admin are granted later.
type RegisterUserCommand struct {
	userID    kernel.UUID
	username  string
	isStudent bool
	isTeacher bool

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID kernel.UUID, username string, isStudent, isTeacher bool) (RegisterUserCommand, error) {
	var usernameErr error
	if strings.TrimSpace(username) == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}

	if err := errors.Join(userID.Validate(), usernameErr); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:    userID,
		username:  username,
		isStudent: isStudent,
		isTeacher: isTeacher,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }

func (c RegisterUserCommand) Username() string { return c.username }

func (c RegisterUserCommand) IsStudent() bool { return c.isStudent }

func (c RegisterUserCommand) IsTeacher() bool { return c.isTeacher }
