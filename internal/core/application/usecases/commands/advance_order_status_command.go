package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand asks to move an order to status on behalf of actor.
// Whether the move is allowed is decided against the stored status, not here.
type AdvanceOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	actor   user.Actor

	guard guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(orderID kernel.UUID, status order.Status, actor user.Actor) (AdvanceOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate(), actor.Validate()); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	return AdvanceOrderStatusCommand{
		orderID: orderID,
		status:  status,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c AdvanceOrderStatusCommand) Status() order.Status { return c.status }
func (c AdvanceOrderStatusCommand) Actor() user.Actor    { return c.actor }
