package ports

import (
	"context"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
)

// LedgerRecord is a committed ledger entry as the relay sees it. Seq is the
// store-assigned insertion order and is strictly increasing.
type LedgerRecord struct {
	Seq        uint64
	EntryID    kernel.UUID
	OrderID    kernel.UUID
	ActorID    kernel.UUID
	Status     order.Status
	RecordedAt time.Time
}

// LedgerRepository reads the ledger in insertion order and keeps named relay
// cursors.
type LedgerRepository interface {
	// ListAfter returns up to limit records with seq greater than afterSeq that
	// were inserted before notAfter, ordered by seq. Insertion times come from
	// the store's clock while notAfter comes from the caller's, so the settle
	// delay must exceed the skew between the two.
	ListAfter(ctx context.Context, afterSeq uint64, notAfter time.Time, limit int) ([]LedgerRecord, error)

	// LockCursor returns the cursor position, creating it at zero, and holds a
	// row lock on it until the surrounding transaction ends.
	LockCursor(ctx context.Context, name string) (uint64, error)

	SaveCursor(ctx context.Context, name string, seq uint64) error
}
