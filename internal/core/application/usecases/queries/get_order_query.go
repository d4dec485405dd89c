package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order on behalf of its owner, a teacher or a dispatcher.
type GetOrderQuery struct {
	actorID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actorID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actorID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actorID: actorID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ActorID() kernel.UUID { return q.actorID }

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }
