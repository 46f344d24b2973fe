package kernel

import (
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a zero UUID is validated.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders and print jobs. It wraps google/uuid so the domain never
// handles a nil identifier: the zero value is invalid and Validate rejects it.
//
// Values are immutable and safe to share between goroutines.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	jobID := kernel.NewUUID()
//	job, err := printjob.NewJob(jobID, orderID, now)
//
//	fromPath, err := kernel.UUIDFromString(c.Param("orderId"))
//	if err != nil {
//	    return err // errs.ErrValueIsInvalid, rendered as 400
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (v4) identifier.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses any textual form accepted by google/uuid, including the
// braced and urn:uuid: forms. A malformed or nil identifier fails with
// errs.ErrValueIsInvalid or errs.ErrValueIsRequired respectively.
//
// Example:
//
//	id, err := kernel.UUIDFromString("0b9d1c2e-5f4a-4c3b-9e8d-7a6b5c4d3e2f")
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes restores an identifier read from storage.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the underlying google/uuid value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// ShortCode is the human-facing order number printed on tickets and used in
// customer notifications: the first eight hex digits, upper-cased.
//
// Example:
//
//	id, _ := kernel.UUIDFromString("ab12cd34-0000-4000-8000-000000000000")
//	id.ShortCode() // "AB12CD34"
func (u UUID) ShortCode() string {
	return strings.ToUpper(u.id.String()[:8])
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
