package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists orders newest first. OwnerID and Status narrow the
// result; a nil filter means "any". Customers are always narrowed to their
// own orders.
type ListOrdersQuery struct {
	actor   user.Actor
	ownerID *kernel.UUID
	status  *order.Status
	limit   int
	offset  int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery uses DefaultListLimit when limit is zero.
func NewListOrdersQuery(
	actor user.Actor,
	ownerID *kernel.UUID,
	status *order.Status,
	limit, offset int,
) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var errList []error
	errList = append(errList, actor.Validate())
	if ownerID != nil {
		errList = append(errList, ownerID.Validate())
	}
	if status != nil {
		errList = append(errList, status.Validate())
	}
	if limit < 1 || limit > MaxListLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit))
	}
	if offset < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor:   actor,
		ownerID: ownerID,
		status:  status,
		limit:   limit,
		offset:  offset,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() user.Actor     { return q.actor }
func (q ListOrdersQuery) OwnerID() *kernel.UUID { return q.ownerID }
func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) Limit() int            { return q.limit }
func (q ListOrdersQuery) Offset() int           { return q.offset }

type ListOrdersQueryResponse struct {
	ID          kernel.UUID
	OwnerID     kernel.UUID
	OwnerName   string
	ProductName string
	Quantity    int
	Status      order.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
