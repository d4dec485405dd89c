package queries

import (
	"context"

	"campusdelivery/internal/core/ports"
)

type GetCurrentUserQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetCurrentUserQueryHandler(uowFactory ports.UnitOfWorkFactory) GetCurrentUserQueryHandler {
	return GetCurrentUserQueryHandler{uowFactory: uowFactory}
}

// Handle returns an ObjectNotFoundError for unknown ids.
func (h GetCurrentUserQueryHandler) Handle(ctx context.Context, query GetCurrentUserQuery) (UserResponse, error) {
	if err := query.Validate(); err != nil {
		return UserResponse{}, err
	}

	found, err := h.uowFactory.Create().UserRepository().Get(ctx, query.UserID())
	if err != nil {
		return UserResponse{}, err
	}

	return NewUserResponse(found), nil
}
