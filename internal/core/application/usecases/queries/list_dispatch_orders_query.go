package queries

import (
	"errors"
	"strings"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/guard"
)

var ErrListDispatchOrdersQueryIsNotConstructed = errors.New(
	"ListDispatchOrdersQuery must be created via NewListDispatchOrdersQuery constructor",
)

// ListDispatchOrdersQuery is the dispatch board: every order, optionally
// filtered by status.
type ListDispatchOrdersQuery struct {
	actorID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewListDispatchOrdersQuery accepts an empty status for "no filter". Unknown
// status names are rejected.
func NewListDispatchOrdersQuery(actorID kernel.UUID, status string) (ListDispatchOrdersQuery, error) {
	filter := order.Unknown
	var statusErr error
	if strings.TrimSpace(status) != "" {
		filter, statusErr = order.ParseStatus(status)
	}

	if err := errors.Join(actorID.Validate(), statusErr); err != nil {
		return ListDispatchOrdersQuery{}, err
	}

	return ListDispatchOrdersQuery{actorID: actorID, status: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDispatchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchOrdersQueryIsNotConstructed)
}

func (q ListDispatchOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// Status returns the filter, or order.Unknown when every order is wanted.
func (q ListDispatchOrdersQuery) Status() order.Status {
	return q.status
}
