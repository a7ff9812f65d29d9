package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New(
	"ListUsersQuery must be created via NewListUsersQuery constructor",
)

// ListUsersQuery lists accounts newest first, optionally narrowed to one role.
type ListUsersQuery struct {
	actor  user.Actor
	role   *user.Role
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListUsersQuery uses DefaultListLimit when limit is zero.
func NewListUsersQuery(actor user.Actor, role *user.Role, limit, offset int) (ListUsersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var errList []error
	errList = append(errList, actor.Validate())
	if role != nil {
		errList = append(errList, role.Validate())
	}
	if limit < 1 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListUsersQuery{}, err
	}

	return ListUsersQuery{
		actor:  actor,
		role:   role,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Actor() user.Actor { return q.actor }
func (q ListUsersQuery) Role() *user.Role  { return q.role }
func (q ListUsersQuery) Limit() int        { return q.limit }
func (q ListUsersQuery) Offset() int       { return q.offset }

type ListUsersQueryResponse struct {
	ID         kernel.UUID
	FullName   string
	Email      string
	Phone      string
	Role       user.Role
	IsVerified bool
	CreatedAt  time.Time
}
