package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetCurrentUserQueryIsNotConstructed = errors.New(
	"GetCurrentUserQuery must be created via NewGetCurrentUserQuery constructor",
)

// GetCurrentUserQuery resolves the id forwarded by the gateway. The HTTP
// layer also uses it to authenticate every request.
type GetCurrentUserQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCurrentUserQuery(userID kernel.UUID) (GetCurrentUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetCurrentUserQuery{}, err
	}
	return GetCurrentUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentUserQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentUserQueryIsNotConstructed)
}

func (q GetCurrentUserQuery) UserID() kernel.UUID { return q.userID }
