package robot

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

const (
	// NameMinLength is the shortest accepted robot name.
	NameMinLength = 1
	// NameMaxLength is the longest accepted robot name, in characters.
	NameMaxLength = 50
)

// Domain errors for robot operations.
var (
	// ErrRobotIsNotConstructed is returned when using an improperly initialized Robot.
	ErrRobotIsNotConstructed = errors.New("Robot must be created via NewRobot constructor")
	// ErrNoRobotAvailable is returned by the pool when every robot is carrying an order.
	// Callers may retry later.
	ErrNoRobotAvailable = errors.New("no robot available")
	// ErrRobotBusy is returned when an operation needs an idle robot but it carries an order.
	ErrRobotBusy = errors.New("robot is busy")
)

// Robot is a campus delivery robot. It is an aggregate root that tracks
// whether the robot is free and which order it is carrying.
//
// Business rules:
//   - Name is 1..50 characters
//   - A robot is unavailable exactly when it carries an order
//   - A robot carries at most one order at a time
//   - NextAvailableAt is informational; it never changes availability
//
// Example usage:
//
//	r, err := robot.NewRobot(kernel.NewUUID(), "R2")
//	if err != nil {
//	    return err
//	}
//	if err = r.Occupy(orderID); err != nil {
//	    return err // robot.ErrRobotBusy
//	}
type Robot struct {
	id              kernel.UUID
	name            string
	currentOrder    *kernel.UUID
	nextAvailableAt *time.Time

	guard guard.ConstructorGuard
}

// NewRobot creates an idle robot.
func NewRobot(id kernel.UUID, name string) (*Robot, error) {
	r := &Robot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRobot reconstructs a Robot from persistent storage.
//
// Parameters:
//   - id: robot identifier
//   - name: display name (1..50 characters)
//   - available: stored availability flag
//   - currentOrder: the order being carried, nil when idle
//   - nextAvailableAt: optional informational timestamp
//
// Returns a ValueIsInvalidError when available and currentOrder disagree.
func RestoreRobot(
	id kernel.UUID,
	name string,
	available bool,
	currentOrder *kernel.UUID,
	nextAvailableAt *time.Time,
) (*Robot, error) {
	r := &Robot{
		nextAvailableAt: copyTime(nextAvailableAt),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setCurrentOrder(available, currentOrder),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Robot was built by a constructor.
func (r *Robot) Validate() error {
	if r == nil {
		return ErrRobotIsNotConstructed
	}
	return r.guard.Validate(ErrRobotIsNotConstructed)
}

func (r *Robot) ID() kernel.UUID {
	return r.id
}

func (r *Robot) Name() string {
	return r.name
}

// IsAvailable reports whether the robot is idle.
func (r *Robot) IsAvailable() bool {
	return r.currentOrder == nil
}

// CurrentOrder returns the order being carried, nil when idle.
func (r *Robot) CurrentOrder() *kernel.UUID {
	if r.currentOrder == nil {
		return nil
	}
	id := *r.currentOrder
	return &id
}

func (r *Robot) NextAvailableAt() *time.Time {
	return copyTime(r.nextAvailableAt)
}

// IsCarrying reports whether the robot is bound to orderID.
func (r *Robot) IsCarrying(orderID kernel.UUID) bool {
	return r.currentOrder != nil && r.currentOrder.IsEqual(orderID)
}

// Occupy marks an idle robot as carrying orderID. A robot that is already
// carrying any order, including orderID, returns ErrRobotBusy.
func (r *Robot) Occupy(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if !r.IsAvailable() {
		return fmt.Errorf("%w: %s carries order %s", ErrRobotBusy, r.name, r.currentOrder)
	}
	id := orderID
	r.currentOrder = &id
	return nil
}

// Bind makes sure the robot carries orderID. It is a no-op if the robot is
// already bound to that order and occupies the robot if it is idle.
func (r *Robot) Bind(orderID kernel.UUID) error {
	if r.IsCarrying(orderID) {
		return nil
	}
	return r.Occupy(orderID)
}

// Release clears the current order. Releasing an idle robot is a no-op.
func (r *Robot) Release() {
	r.currentOrder = nil
}

// Rename changes the display name.
func (r *Robot) Rename(name string) error {
	return r.setName(name)
}

// SetNextAvailableAt records when an administrator expects the robot to be free.
// nil clears the value.
func (r *Robot) SetNextAvailableAt(at *time.Time) {
	r.nextAvailableAt = copyTime(at)
}

// CanBeDeleted returns ErrRobotBusy unless the robot is idle.
func (r *Robot) CanBeDeleted() error {
	if !r.IsAvailable() {
		return fmt.Errorf("%w: %s carries order %s", ErrRobotBusy, r.name, r.currentOrder)
	}
	return nil
}

func (r *Robot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Robot) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > NameMaxLength {
		return errs.NewValueIsOutOfRangeError("name length", n, NameMinLength, NameMaxLength)
	}
	r.name = name
	return nil
}

func (r *Robot) setCurrentOrder(available bool, currentOrder *kernel.UUID) error {
	if available != (currentOrder == nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"is_available",
			fmt.Errorf("available=%t does not match current order %v", available, currentOrder),
		)
	}
	if currentOrder != nil {
		if err := currentOrder.Validate(); err != nil {
			return err
		}
		id := *currentOrder
		r.currentOrder = &id
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
