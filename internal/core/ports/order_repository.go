package ports

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates together with their ledger.
type OrderRepository interface {
	// Add inserts a new order and every pending ledger entry, then marks the
	// entries persisted.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, updatedAt and version, appends the pending ledger
	// entries and marks them persisted. It fails with
	// errs.ConcurrentModificationError when the stored version no longer
	// equals aggregate.PersistedVersion().
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its full ledger or fails with
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get while holding a row lock on the order until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
