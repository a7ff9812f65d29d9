package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks to open a purchase request for ownerID on behalf of
// actor. Customers may only name themselves as owner.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	ownerID kernel.UUID
	actor   user.Actor
	details order.ProductDetails

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID, ownerID kernel.UUID,
	actor user.Actor,
	details order.ProductDetails,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOwnerID(ownerID),
		cmd.setActor(actor),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateOrderCommand) OwnerID() kernel.UUID          { return c.ownerID }
func (c CreateOrderCommand) Actor() user.Actor             { return c.actor }
func (c CreateOrderCommand) Details() order.ProductDetails { return c.details }

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setOwnerID(id kernel.UUID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("ownerId")
	}
	c.ownerID = id
	return nil
}

func (c *CreateOrderCommand) setActor(actor user.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.ProductDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}
