package queries

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery asks for an order's current state and its full status
// ledger. The owner and staff may read it.
type GetOrderTimelineQuery struct {
	orderID kernel.UUID
	actor   user.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderTimelineQuery(orderID kernel.UUID, actor user.Actor) (GetOrderTimelineQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderTimelineQuery{}, err
	}
	return GetOrderTimelineQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

func (q GetOrderTimelineQuery) OrderID() kernel.UUID { return q.orderID }
func (q GetOrderTimelineQuery) Actor() user.Actor    { return q.actor }

// TimelineEntry is one ledger record. ActorName is empty when the acting
// account no longer exists.
type TimelineEntry struct {
	ID         kernel.UUID
	Status     order.Status
	RecordedAt time.Time
	ActorID    kernel.UUID
	ActorName  string
}

type GetOrderTimelineQueryResponse struct {
	ID             kernel.UUID
	OwnerID        kernel.UUID
	OwnerName      string
	ProductURL     string
	ProductName    string
	Quantity       int
	Variation      string
	Specifications string
	Notes          string
	ScreenshotRef  string
	Status         order.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// History is ordered by RecordedAt, then by insertion order.
	History []TimelineEntry
}
