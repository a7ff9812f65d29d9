// Package commands contains the operations that change state: order creation,
// status advancement, account registration and role changes, and the ledger
// relay. Every handler validates its command, runs inside one unit of work and
// commits exactly once.
package commands

import (
	"context"

	"cargo/internal/core/ports"
)

// Narrow unit-of-work views so each handler depends only on the repositories
// it touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	LedgerRepoFactory interface {
		LedgerRepository() ports.LedgerRepository
	}

	// OrderUoW covers order writes, which also need to check the owner account.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		UserRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	LedgerUoW interface {
		TxManager
		LedgerRepoFactory
	}

	LedgerUoWFactory interface {
		Create() LedgerUoW
	}
)
