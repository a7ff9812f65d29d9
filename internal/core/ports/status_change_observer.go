package ports

import (
	"context"

	"cargo/internal/core/domain/model/order"
)

// StatusChangeObserver is notified once per committed ledger entry. It must
// not fail the operation that produced the change.
type StatusChangeObserver interface {
	OnStatusChanged(ctx context.Context, event order.StatusChanged)
}
