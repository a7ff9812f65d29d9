package order

import (
	"time"

	"cargo/internal/core/domain/model/kernel"
)

// StatusChanged is raised for every ledger entry once its transaction has
// committed. From is Unknown for the entry written when the order is created.
type StatusChanged struct {
	OrderID    kernel.UUID
	OwnerID    kernel.UUID
	EntryID    kernel.UUID
	ActorID    kernel.UUID
	From       Status
	To         Status
	OccurredAt time.Time
	// Version is the ledger length after the entry was appended.
	Version int
}
