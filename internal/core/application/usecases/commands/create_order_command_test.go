package commands_test

import (
	"testing"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(t *testing.T) order.ProductDetails {
	t.Helper()
	d, err := order.NewProductDetails("https://item.example.cn/detail/9", "Bluetooth speaker", 1, "", "", "", "")
	require.NoError(t, err)
	return d
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		id, owner := kernel.NewUUID(), kernel.NewUUID()
		actor := user.Actor{ID: owner, Role: user.Customer}

		cmd, err := commands.NewCreateOrderCommand(id, owner, actor, details(t))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, owner, cmd.OwnerID())
		assert.Equal(t, actor, cmd.Actor())
		assert.Equal(t, "Bluetooth speaker", cmd.Details().ProductName())
	})

	t.Run("invalid input is reported together", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, kernel.UUID{}, user.Actor{}, order.ProductDetails{})

		require.Error(t, err)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Contains(t, err.Error(), "ownerId")
		assert.Contains(t, err.Error(), "details")
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
