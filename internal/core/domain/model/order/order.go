package order

import (
	"errors"
	"fmt"
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrAlreadyHasProof is returned when a proof is attached to an order that already carries one.
	// The proof is minted once at creation; seeing this error means a caller bug.
	ErrAlreadyHasProof = errors.New("order already has a proof")
)

// Order is the aggregate root of a campus delivery. It owns the package details, the
// lifecycle status and the signed proof that is scanned at drop-off.
//
// Order follows these invariants:
//   - Must have a valid identifier and owning student
//   - Status only moves forward along the transition table (see Status)
//   - The assignee is nil while Pending, set on the move to Assigned and never cleared
//   - The proof is attached exactly once and is immutable afterwards
//
// Creation is two-phase: NewOrder allocates the order without a proof, because the
// proof signs the order id; AttachProof completes it.
type Order struct {
	id         kernel.UUID
	studentID  kernel.UUID
	assigneeID *kernel.UUID
	details    Details
	status     Status
	proof      string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order owned by studentID.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), student.ID(), order.Details{
//	    PackageType:      "books",
//	    Weight:           "2kg",
//	    PickupBuilding:   "Library",
//	    DeliveryBuilding: "Dorm 3",
//	    DeliverySpeed:    "standard",
//	}, time.Now())
func NewOrder(id, studentID kernel.UUID, details Details, createdAt time.Time) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStudent(studentID),
		o.setDetails(details),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, checking that the stored
// status and assignee are consistent.
func RestoreOrder(
	id, studentID kernel.UUID,
	assigneeID *kernel.UUID,
	details Details,
	status Status,
	proof string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		proof: proof,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setStudent(studentID),
		o.setDetails(details),
		o.setCreatedAt(createdAt),
		o.setStatus(status, assigneeID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// StudentID returns the id of the student who created the order.
func (o *Order) StudentID() kernel.UUID {
	return o.studentID
}

// Assignee returns the teacher or dispatcher who assigned the order, nil while Pending.
func (o *Order) Assignee() *kernel.UUID {
	if o.assigneeID == nil {
		return nil
	}
	id := *o.assigneeID
	return &id
}

// Details returns a copy of the package, route and schedule details.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Proof returns the encoded proof, empty until AttachProof succeeds.
func (o *Order) Proof() string {
	return o.proof
}

// HasProof reports whether the proof has been attached.
func (o *Order) HasProof() bool {
	return o.proof != ""
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsOwnedBy reports whether the order belongs to the given student.
func (o *Order) IsOwnedBy(studentID kernel.UUID) bool {
	return o.studentID.IsEqual(studentID)
}

// AttachProof stores the encoded proof. It succeeds once; later calls return ErrAlreadyHasProof.
func (o *Order) AttachProof(proof string) error {
	if proof == "" {
		return errs.NewValueIsRequiredError("proof")
	}
	if o.HasProof() {
		return fmt.Errorf("%w: order %s", ErrAlreadyHasProof, o.id)
	}
	o.proof = proof
	return nil
}

// Transition moves the order from expected to next.
//
// The check order matters to callers:
//   - ErrStaleState if the current status differs from expected
//   - ErrInvalidTransition if expected -> next is not in the table
//   - ValueIsRequiredError if next is Assigned and no assignee is given
//
// actor becomes the assignee on the move to Assigned and is ignored otherwise,
// so an existing assignee is never overwritten or cleared.
func (o *Order) Transition(expected, next Status, actor *kernel.UUID) error {
	if o.status != expected {
		return fmt.Errorf("%w: order %s is %s, expected %s", ErrStaleState, o.id, o.status, expected)
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if newStatus == Assigned {
		if actor == nil {
			return errs.NewValueIsRequiredError("assignee")
		}
		if err = actor.Validate(); err != nil {
			return err
		}
		id := *actor
		o.assigneeID = &id
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStudent(studentID kernel.UUID) error {
	if err := studentID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("student", err)
	}
	o.studentID = studentID
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(status Status, assigneeID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveAssignee(assigneeID != nil); err != nil {
		return err
	}
	if assigneeID != nil {
		if err := assigneeID.Validate(); err != nil {
			return err
		}
		id := *assigneeID
		o.assigneeID = &id
	}
	o.status = status
	return nil
}
