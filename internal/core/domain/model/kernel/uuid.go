package kernel

import (
	"fmt"

	"campusdelivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("uuid")

// UUID identifies orders, robots and users.
//
// The zero value is invalid; build one with NewUUID, UUIDFromString or UUIDFromBytes.
//
//	robotID, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses ids coming from request paths, headers and signed proofs.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("parse %q: %w", s, err))
	}
	return checked(id)
}

// UUIDFromBytes reads a 16-byte database column.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	return checked(id)
}

func checked(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

// String is the canonical hyphenated form; proof payloads carry ids this way.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped value to persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
