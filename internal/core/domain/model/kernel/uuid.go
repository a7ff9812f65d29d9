package kernel

import (
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("id")

// UUID identifies orders, users and ledger entries. The zero value is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// ParseUUID parses s and reports failures as a validation error on paramName,
// so callers at the edge can tell the client which field was malformed.
func ParseUUID(paramName, s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if id == uuid.Nil {
		return UUID{}, errs.NewValueIsRequiredError(paramName)
	}
	return UUID{id: id}, nil
}

// FromUUID wraps an already parsed identifier, e.g. one bound from a request
// path or loaded from the store.
func FromUUID(id uuid.UUID) UUID {
	return UUID{id: id}
}

func (u UUID) String() string {
	return u.id.String()
}

// Value returns a copy of the underlying identifier.
func (u UUID) Value() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
