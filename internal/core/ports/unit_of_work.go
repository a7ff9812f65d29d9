package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin share its transaction. Aggregates written through them are tracked and
// their status changes are handed to observers only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active or the store refuses
	// the commit. In the latter case nothing was applied.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling it after Commit returns an
	// error and has no effect, so handlers may defer it unconditionally.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	UserRepository() UserRepository
	LedgerRepository() LedgerRepository
}
