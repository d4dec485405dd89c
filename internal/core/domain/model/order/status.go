package order

import (
	"errors"
	"fmt"
	"strings"

	"campusdelivery/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when the requested status is not reachable from the current one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStaleState is returned when the order is no longer in the status the caller expected,
	// typically because a concurrent request moved it first.
	ErrStaleState = errors.New("order status changed since it was read")
)

// Status represents the lifecycle state of a delivery order.
//
// State transitions:
//
//	Pending ──> Assigned ──> Delivering ──> Delivered
//	               │                           ▲
//	               └───────────────────────────┘
//	          (dispatcher may skip Delivering)
//
// Transitions only move forward. Delivered is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order waits for a robot.
	Pending

	// Assigned means a robot has been bound and the package is loaded.
	Assigned

	// Delivering means the robot is on its way to the delivery building.
	Delivering

	// Delivered is the terminal status, reached by dispatcher update or proof scan.
	Delivered
)

// transitions is the complete table of allowed edges.
var transitions = map[Status][]Status{
	Pending:    {Assigned},
	Assigned:   {Delivering, Delivered},
	Delivering: {Delivered},
	Delivered:  {},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Assigned:   "ASSIGNED",
		Delivering: "DELIVERING",
		Delivered:  "DELIVERED",
	}
}

// ParseStatus converts the wire name ("PENDING", "assigned", ...) into a Status.
// Unknown names yield a ValueIsInvalidError.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the four lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status. It is safe on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered
}

// CanTransitionTo reports whether next is directly reachable from s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the edge s -> next is in the table, otherwise an error
// wrapping ErrInvalidTransition.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// ValidateCanHaveAssignee validates the consistency between status and assignee.
//
// Business Rules:
//   - Pending orders must not have an assignee
//   - Assigned, Delivering and Delivered orders must have an assignee
func (s Status) ValidateCanHaveAssignee(assigned bool) error {
	if assigned && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an assignee", s),
		)
	}

	if !assigned && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no assignee", s),
		)
	}

	return nil
}
