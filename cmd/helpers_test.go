package cmd_test

import (
	"context"

	"cargo/internal/adapters/out/eventbus"
	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
)

func eventbusFunc(f func(order.StatusChanged)) eventbus.ObserverFunc {
	return func(_ context.Context, e order.StatusChanged) { f(e) }
}

func cmdNewCreateOrder(id kernel.UUID, owner *user.User, details order.ProductDetails) (commands.CreateOrderCommand, error) {
	return commands.NewCreateOrderCommand(id, owner.ID(), owner.Actor(), details)
}

func cmdNewAdvance(id kernel.UUID, status order.Status, actor *user.User) (commands.AdvanceOrderStatusCommand, error) {
	return commands.NewAdvanceOrderStatusCommand(id, status, actor.Actor())
}
