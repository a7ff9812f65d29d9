package user

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
)

// Actor is the authenticated caller of an operation as asserted by a verified
// session token.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

func (a Actor) Validate() error {
	return errors.Join(a.ID.Validate(), a.Role.Validate())
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }
func (a Actor) IsAdmin() bool { return a.Role.IsAdmin() }
