package services

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/user"
)

// ErrForbidden is returned when the actor lacks the role an operation requires.
var ErrForbidden = errors.New("forbidden")

// AssignSurface tells the policy which entry point requested an assignment.
// Teachers assign through the order resource, dispatchers through the dispatch board.
type AssignSurface int

const (
	// TeacherSurface is PUT /orders/{id}.
	TeacherSurface AssignSurface = iota + 1
	// DispatchSurface is PATCH /dispatch/orders/{id} with status ASSIGNED.
	DispatchSurface
)

// AccessPolicy is a stateless domain service holding the role rules.
//
// Business rules:
//   - Students create orders, always on their own behalf
//   - Teachers assign on the teacher surface, dispatchers on the dispatch surface
//   - Dispatchers move orders to ASSIGNED, DELIVERING or DELIVERED
//   - Teachers and dispatchers see every order; students see their own
//   - Admins manage robots and grant the dispatcher role
//
// Example usage:
//
//	policy := services.NewAccessPolicy()
//	if err := policy.CanCreateOrder(actor); err != nil {
//	    return err // wraps ErrForbidden
//	}
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

func (AccessPolicy) CanCreateOrder(actor *user.User) error {
	return requireRole(actor, "create orders", user.Student)
}

func (AccessPolicy) CanAssign(actor *user.User, surface AssignSurface) error {
	switch surface {
	case TeacherSurface:
		return requireRole(actor, "assign robots", user.Teacher)
	case DispatchSurface:
		return requireRole(actor, "assign robots from the dispatch board", user.Dispatcher)
	default:
		return fmt.Errorf("%w: unknown assign surface %d", ErrForbidden, surface)
	}
}

// CanSetDispatchStatus checks the dispatcher role only; whether the target status
// is allowed on the dispatch board is decided by the use case.
func (AccessPolicy) CanSetDispatchStatus(actor *user.User) error {
	return requireRole(actor, "update dispatch status", user.Dispatcher)
}

// CanListAll reports whether the actor may list every order instead of their own.
func (AccessPolicy) CanListAll(actor *user.User) bool {
	return actor != nil && (actor.Has(user.Teacher) || actor.Has(user.Dispatcher))
}

// CanListByStatus guards the dispatch board listing.
func (AccessPolicy) CanListByStatus(actor *user.User) error {
	return requireRole(actor, "view the dispatch board", user.Dispatcher)
}

// CanViewOrder allows the owner, teachers and dispatchers.
func (p AccessPolicy) CanViewOrder(actor *user.User, o *order.Order) error {
	if actor == nil {
		return ErrForbidden
	}
	if p.CanListAll(actor) || o.IsOwnedBy(actor.ID()) {
		return nil
	}
	return fmt.Errorf("%w: %s may not view order %s", ErrForbidden, actor.Username(), o.ID())
}

func (AccessPolicy) CanManageRobots(actor *user.User) error {
	return requireRole(actor, "manage robots", user.Admin)
}

func (AccessPolicy) CanManageUsers(actor *user.User) error {
	return requireRole(actor, "manage users", user.Admin)
}

func requireRole(actor *user.User, action string, role user.Role) error {
	if actor == nil {
		return fmt.Errorf("%w: anonymous users may not %s", ErrForbidden, action)
	}
	if !actor.Has(role) {
		return fmt.Errorf("%w: %s needs the %s role to %s", ErrForbidden, actor.Username(), role, action)
	}
	return nil
}
