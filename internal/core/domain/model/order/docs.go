// Package order provides the Order aggregate of the campus delivery service and
// the Status state machine that governs it.
//
// The package includes:
//   - Order: identity, owning student, package details, status, assignee and proof
//   - Details: the parcel, route and schedule value object
//   - Status: the forward-only lifecycle PENDING -> ASSIGNED -> DELIVERING -> DELIVERED
//
// Key business rules:
//   - Allowed edges: PENDING->ASSIGNED, ASSIGNED->DELIVERING, ASSIGNED->DELIVERED, DELIVERING->DELIVERED
//   - Every transition names the status the caller expects to leave; a mismatch is
//     ErrStaleState, which is how concurrent updates to the same order are detected
//   - The proof is attached once, after the order id exists
//   - The assignee is recorded on the move to ASSIGNED and never cleared
package order
