package services

import (
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
)

// OrderAccessPolicy gates every order and account operation on the actor's
// role. Each check returns nil or an *errs.ActionIsForbiddenError.
//
// Rules:
//   - customers create, list and view only their own orders
//   - staff create, list and view orders of any owner
//   - only staff advance order status
//   - only admins list accounts and change roles; only a super admin grants or
//     revokes super admin
//   - nobody changes their own role
type OrderAccessPolicy struct{}

func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

func (OrderAccessPolicy) CanCreateFor(actor user.Actor, ownerID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewActionIsForbiddenErrorWithCause("create order", err)
	}
	if actor.IsStaff() || actor.ID.IsEqual(ownerID) {
		return nil
	}
	return errs.NewActionIsForbiddenError("create order for another user")
}

func (OrderAccessPolicy) CanView(actor user.Actor, ownerID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewActionIsForbiddenErrorWithCause("view order", err)
	}
	if actor.IsStaff() || actor.ID.IsEqual(ownerID) {
		return nil
	}
	return errs.NewActionIsForbiddenError("view order of another user")
}

func (OrderAccessPolicy) CanAdvance(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewActionIsForbiddenErrorWithCause("advance order status", err)
	}
	if !actor.IsStaff() {
		return errs.NewActionIsForbiddenError("advance order status")
	}
	return nil
}

// ListScope returns the owner filter the actor may use. Customers are always
// narrowed to themselves and may not ask for someone else. For staff a nil
// requested owner means every order.
func (OrderAccessPolicy) ListScope(actor user.Actor, requested *kernel.UUID) (*kernel.UUID, error) {
	if err := actor.Validate(); err != nil {
		return nil, errs.NewActionIsForbiddenErrorWithCause("list orders", err)
	}
	if actor.IsStaff() {
		return requested, nil
	}
	if requested != nil && !requested.IsEqual(actor.ID) {
		return nil, errs.NewActionIsForbiddenError("list orders of another user")
	}
	own := actor.ID
	return &own, nil
}

func (OrderAccessPolicy) CanListUsers(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewActionIsForbiddenErrorWithCause("list users", err)
	}
	if !actor.IsAdmin() {
		return errs.NewActionIsForbiddenError("list users")
	}
	return nil
}

func (OrderAccessPolicy) CanChangeRole(actor user.Actor, target *user.User, role user.Role) error {
	if err := actor.Validate(); err != nil {
		return errs.NewActionIsForbiddenErrorWithCause("change role", err)
	}
	if !actor.IsAdmin() {
		return errs.NewActionIsForbiddenError("change role")
	}
	if actor.ID.IsEqual(target.ID()) {
		return errs.NewActionIsForbiddenError("change own role")
	}
	if (role == user.SuperAdmin || target.Role() == user.SuperAdmin) && actor.Role != user.SuperAdmin {
		return errs.NewActionIsForbiddenError("change super admin role")
	}
	return nil
}
