package commands_test

import (
	"errors"
	"testing"

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

func newCreateOrderHandler(factory commands.OrderUoWFactory) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(factory, services.NewOrderAccessPolicy(), fixedClock())
}

func customerCreateCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	owner := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), owner, user.Actor{ID: owner, Role: user.Customer}, details(t))
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := customerCreateCommand(t)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Exists", ctx, cmd.OwnerID()).Return(true, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, created.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, order.Requested, created.Status())
	require.Len(t, created.History(), 1)
	assert.Equal(t, fixedNow, created.CreatedAt())
	assert.True(t, created.History()[0].ActorID().IsEqual(cmd.Actor().ID))
	orderRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_StaffForAnotherOwner(t *testing.T) {
	ctx := t.Context()
	owner := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), owner,
		user.Actor{ID: kernel.NewUUID(), Role: user.OrderProcessor}, details(t))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("UserRepository").Return(userRepo)
	userRepo.On("Exists", ctx, owner).Return(true, nil)
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Add", ctx, mock.Anything).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := newCreateOrderHandler(factory)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, created.OwnerID().IsEqual(owner))
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := newCreateOrderHandler(factory)

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_CustomerForAnotherOwner(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		user.Actor{ID: kernel.NewUUID(), Role: user.Customer}, details(t))
	require.NoError(t, err)
	factory := new(MockOrderUoWFactory)
	h := newCreateOrderHandler(factory)

	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrActionIsForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_UnknownOwner(t *testing.T) {
	ctx := t.Context()
	cmd := customerCreateCommand(t)

	userRepo := new(MockUserRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Exists", ctx, cmd.OwnerID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := newCreateOrderHandler(factory)
	_, err := h.Handle(ctx, cmd)

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ownerId", notFound.ParamName)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Errors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("begin", func(t *testing.T) {
		ctx := t.Context()
		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(boom).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := newCreateOrderHandler(factory)
		_, err := h.Handle(ctx, customerCreateCommand(t))

		require.ErrorIs(t, err, boom)
		uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("add", func(t *testing.T) {
		ctx := t.Context()
		cmd := customerCreateCommand(t)
		orderRepo := new(MockOrderRepository)
		userRepo := new(MockUserRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("UserRepository").Return(userRepo).Once(),
			userRepo.On("Exists", ctx, cmd.OwnerID()).Return(true, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Add", ctx, mock.Anything).Return(errs.NewStorageError("insert order", boom)).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := newCreateOrderHandler(factory)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStorage)
		uow.AssertExpectations(t)
	})

	t.Run("commit", func(t *testing.T) {
		ctx := t.Context()
		cmd := customerCreateCommand(t)
		orderRepo := new(MockOrderRepository)
		userRepo := new(MockUserRepository)
		uow := new(MockOrderUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("UserRepository").Return(userRepo).Once(),
			userRepo.On("Exists", ctx, cmd.OwnerID()).Return(true, nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Add", ctx, mock.Anything).Return(nil).Once(),
			uow.On("Commit", ctx).Return(boom).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := newCreateOrderHandler(factory)
		created, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, boom)
		assert.Nil(t, created)
		uow.AssertExpectations(t)
	})
}
