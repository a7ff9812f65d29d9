package commands_test

import (
	"errors"
	"testing"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), details(t), kernel.NewUUID(), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	o.ClearPending()
	return o
}

func staffActor() user.Actor {
	return user.Actor{ID: kernel.NewUUID(), Role: user.OrderProcessor}
}

func newAdvanceHandler(factory commands.OrderUoWFactory) commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(factory, services.NewOrderAccessPolicy(), fixedClock())
}

func TestAdvanceOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := storedOrder(t)
	staff := staffActor()
	cmd, err := commands.NewAdvanceOrderStatusCommand(current.ID(), order.Purchased, staff)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Purchased && o.PersistedVersion() == 1 && len(o.PendingEntries()) == 1
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Purchased, updated.Status())
	assert.Equal(t, fixedNow, updated.UpdatedAt())
	history := updated.History()
	require.Len(t, history, 2)
	assert.True(t, history[1].ActorID().IsEqual(staff.ID))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	current := storedOrder(t)
	cmd, err := commands.NewAdvanceOrderStatusCommand(current.ID(), order.Arrived, staffActor())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, current.ID()).Return(current, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceHandler(factory)
	_, err = h.Handle(ctx, cmd)

	var transitionErr *errs.StatusTransitionIsInvalidError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "REQUESTED", transitionErr.From)
	assert.Equal(t, "ARRIVED", transitionErr.To)
	assert.Len(t, current.History(), 1)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvanceOrderStatusCommandHandler_Handle_CustomerIsForbidden(t *testing.T) {
	cmd, err := commands.NewAdvanceOrderStatusCommand(kernel.NewUUID(), order.Purchased,
		user.Actor{ID: kernel.NewUUID(), Role: user.Customer})
	require.NoError(t, err)
	factory := new(MockOrderUoWFactory)

	h := newAdvanceHandler(factory)
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrActionIsForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestAdvanceOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewAdvanceOrderStatusCommand(id, order.Purchased, staffActor())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderStatusCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	current := storedOrder(t)
	cmd, err := commands.NewAdvanceOrderStatusCommand(current.ID(), order.Declined, staffActor())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(errs.NewConcurrentModificationError("order", current.ID().String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrentModification)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAdvanceOrderStatusCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	current := storedOrder(t)
	cmd, err := commands.NewAdvanceOrderStatusCommand(current.ID(), order.Purchased, staffActor())
	require.NoError(t, err)
	boom := errors.New("commit failed")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(nil).Once()
	uow.On("Commit", ctx).Return(boom).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newAdvanceHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, boom)
	assert.Nil(t, updated)
	uow.AssertExpectations(t)
}
