// Package memory provides in-process implementations of the repositories and
// the unit of work. All records live in one Store guarded by a single mutex,
// which is the record lock for every read-then-write.
//
// A unit of work journals an undo step for each change it makes; Rollback
// replays them in reverse. Undo steps only apply while the record still holds
// the value the change produced, so they never clobber a later change made by
// another unit of work.
package memory

import (
	"sync"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/model/user"
)

// Store holds every record. The zero value is not usable; call NewStore.
type Store struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]orderRecord
	robots map[kernel.UUID]robotRecord
	users  map[kernel.UUID]userRecord
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]orderRecord),
		robots: make(map[kernel.UUID]robotRecord),
		users:  make(map[kernel.UUID]userRecord),
	}
}

// journal collects undo steps. Steps run with Store.mu held.
type journal struct {
	undo []func()
}

func (j *journal) record(step func()) {
	if j != nil {
		j.undo = append(j.undo, step)
	}
}

func (s *Store) rollback(j *journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type orderRecord struct {
	id         kernel.UUID
	studentID  kernel.UUID
	assigneeID *kernel.UUID
	details    order.Details
	status     order.Status
	proof      string
	createdAt  time.Time
}

func orderFromDomain(o *order.Order) orderRecord {
	return orderRecord{
		id:         o.ID(),
		studentID:  o.StudentID(),
		assigneeID: o.Assignee(),
		details:    o.Details(),
		status:     o.Status(),
		proof:      o.Proof(),
		createdAt:  o.CreatedAt(),
	}
}

func (r orderRecord) toDomain() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.studentID, r.assigneeID, r.details, r.status, r.proof, r.createdAt)
}

type robotRecord struct {
	id              kernel.UUID
	name            string
	currentOrder    *kernel.UUID
	nextAvailableAt *time.Time
}

func robotFromDomain(r *robot.Robot) robotRecord {
	return robotRecord{
		id:              r.ID(),
		name:            r.Name(),
		currentOrder:    r.CurrentOrder(),
		nextAvailableAt: r.NextAvailableAt(),
	}
}

func (r robotRecord) toDomain() (*robot.Robot, error) {
	return robot.RestoreRobot(r.id, r.name, r.currentOrder == nil, r.currentOrder, r.nextAvailableAt)
}

func (r robotRecord) carries(orderID kernel.UUID) bool {
	return r.currentOrder != nil && r.currentOrder.IsEqual(orderID)
}

type userRecord struct {
	id       kernel.UUID
	username string
	roles    []user.Role
}

func userFromDomain(u *user.User) userRecord {
	return userRecord{
		id:       u.ID(),
		username: u.Username(),
		roles:    u.Roles().List(),
	}
}

func (r userRecord) toDomain() (*user.User, error) {
	roles, err := user.NewRoles(r.roles...)
	if err != nil {
		return nil, err
	}
	return user.NewUser(r.id, r.username, roles)
}
