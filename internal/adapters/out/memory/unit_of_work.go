package memory

import (
	"context"
	"errors"
	"log/slog"

	"campusdelivery/internal/adapters/out/tracking"
	"campusdelivery/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoActiveTransaction = errors.New("memory: no active transaction")

// UnitOfWorkFactory creates journaled units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory wires a factory. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.OrderEventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store, publisher: publisher, logger: logger}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:     f.store,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// UnitOfWork applies changes to the Store immediately and undoes them on Rollback.
// Other units of work see changes before Commit; the per-record checks in the
// repositories keep that safe for this service's operations.
type UnitOfWork struct {
	store     *Store
	publisher ports.OrderEventPublisher
	logger    *slog.Logger

	journal *journal
	tracker tracking.Tracker
}

// Begin starts journaling. Calling it twice is a no-op.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.journal == nil {
		u.journal = &journal{}
	}
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.journal == nil {
		return ErrNoActiveTransaction
	}
	u.journal = nil
	u.tracker.Flush(ctx, u.publisher, u.logger)
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.journal == nil {
		return ErrNoActiveTransaction
	}
	u.store.rollback(u.journal)
	u.journal = nil
	u.tracker.Reset()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: u.store, journal: u.journal, tracker: &u.tracker}
}

func (u *UnitOfWork) RobotRepository() ports.RobotRepository {
	return &RobotRepository{store: u.store, journal: u.journal, tracker: &u.tracker}
}

func (u *UnitOfWork) UserRepository() ports.UserRepository {
	return &UserRepository{store: u.store, journal: u.journal}
}
