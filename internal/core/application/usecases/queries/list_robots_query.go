package queries

import (
	"errors"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/guard"
)

var ErrListRobotsQueryIsNotConstructed = errors.New(
	"ListRobotsQuery must be created via NewListRobotsQuery constructor",
)

// ListRobotsQuery lists the whole pool, ordered by name. Any known user may ask.
type ListRobotsQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListRobotsQuery(actorID kernel.UUID) (ListRobotsQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListRobotsQuery{}, err
	}
	return ListRobotsQuery{actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRobotsQuery) Validate() error {
	return q.guard.Validate(ErrListRobotsQueryIsNotConstructed)
}

func (q ListRobotsQuery) ActorID() kernel.UUID { return q.actorID }
