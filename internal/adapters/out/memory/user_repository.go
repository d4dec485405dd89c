package memory

import (
	"context"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"
)

// UserRepository implements ports.UserRepository over a Store.
type UserRepository struct {
	store   *Store
	journal *journal
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := aggregate.ID()
	if _, ok := r.store.users[id]; ok {
		return errs.NewValueIsInvalidErrorWithCause("user", fmt.Errorf("user %s already exists", id))
	}
	for _, rec := range r.store.users {
		if rec.username == aggregate.Username() {
			return fmt.Errorf("%w: %s", ports.ErrUsernameTaken, aggregate.Username())
		}
	}

	r.store.users[id] = userFromDomain(aggregate)
	r.journal.record(func() { delete(r.store.users, id) })
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.users[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id.String())
	}
	return rec.toDomain()
}

func (r *UserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := aggregate.ID()
	prev, ok := r.store.users[id]
	if !ok {
		return errs.NewObjectNotFoundError("user", id.String())
	}
	cur := prev
	cur.roles = aggregate.Roles().List()
	r.store.users[id] = cur
	r.journal.record(func() {
		if now, ok := r.store.users[id]; ok {
			now.roles = prev.roles
			r.store.users[id] = now
		}
	})
	return nil
}
