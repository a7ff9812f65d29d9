package queries_test

import (
	"context"
	"testing"
	"time"

	"cargo/internal/adapters/out/postgres/orderrepo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// storeOrder saves an order for owner created at createdAt and advanced
// through statuses by actor, one minute apart.
func storeOrder(
	t *testing.T,
	db *gorm.DB,
	owner *user.User,
	name string,
	createdAt time.Time,
	actor kernel.UUID,
	statuses ...order.Status,
) *order.Order {
	t.Helper()
	ctx := context.Background()
	repo := orderrepo.NewGormOrderRepository(db, nil)

	details, err := order.NewProductDetails("https://detail.1688.com/offer/77.html", name, 10, "Red", "", "", "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), owner.ID(), details, owner.ID(), createdAt)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, o))

	if len(statuses) == 0 {
		return o
	}
	at := createdAt
	for _, s := range statuses {
		at = at.Add(time.Minute)
		require.NoError(t, o.AdvanceStatus(s, actor, at))
	}
	require.NoError(t, repo.Update(ctx, o))
	return o
}
