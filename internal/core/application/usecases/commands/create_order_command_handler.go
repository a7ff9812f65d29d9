package commands

import (
	"context"

	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/services"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// CreateOrderCommandHandler opens an order in Requested together with its
// first ledger entry, in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
	clock      ports.Clock
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderAccessPolicy,
	clock ports.Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

// Handle fails with errs.ActionIsForbiddenError when the actor may not create
// for the owner and errs.ObjectNotFoundError when the owner account is unknown.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanCreateFor(cmd.Actor(), cmd.OwnerID()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.UserRepository().Exists(ctx, cmd.OwnerID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("ownerId", cmd.OwnerID().String())
	}

	created, err := order.NewOrder(cmd.OrderID(), cmd.OwnerID(), cmd.Details(), cmd.Actor().ID, h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
