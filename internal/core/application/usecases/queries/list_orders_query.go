package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders visible to the actor: every order for
// teachers and dispatchers, their own orders for students.
//
// Example:
//
//	query, _ := NewListOrdersQuery(actorID)
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(actorID kernel.UUID) (ListOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}
