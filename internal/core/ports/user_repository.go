package ports

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/user"
)

// ErrUsernameTaken is returned by UserRepository.Add for a duplicate username.
var ErrUsernameTaken = errors.New("username already taken")

type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error

	// Get returns the user or an ObjectNotFoundError with ParamName "user".
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// Update stores the roles of an existing user.
	Update(ctx context.Context, aggregate *user.User) error
}
