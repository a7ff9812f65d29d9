package commands

import (
	"context"

	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/services"
	"cargo/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler is the only writer of order status. It
// locks the order row, checks the transition against the locked state, then
// updates the row and appends the ledger entry in the same transaction.
// Two concurrent calls on one order are serialized by the lock; if the store
// cannot lock, the version check makes the loser fail with
// errs.ConcurrentModificationError instead of applying a stale transition.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
	clock      ports.Clock
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.OrderAccessPolicy,
	clock ports.Clock,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clock,
	}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanAdvance(cmd.Actor()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	current, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = current.AdvanceStatus(cmd.Status(), cmd.Actor().ID, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, current); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return current, nil
}
