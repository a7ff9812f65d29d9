// Package postgres is the GORM store: connection setup, schema migration and
// the unit of work that binds the order, user and ledger repositories to one
// transaction.
//
//	factory := NewGormUnitOfWorkFactory(db, observer)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
//	...
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Status changes written through the order repository reach the observer
// only after Commit succeeds.
package postgres

import (
	"context"
	"errors"

	"cargo/internal/adapters/out/postgres/dberrs"
	"cargo/internal/adapters/out/postgres/ledgerrepo"
	"cargo/internal/adapters/out/postgres/orderrepo"
	"cargo/internal/adapters/out/postgres/userrepo"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/logging"

	"gorm.io/gorm"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was not
// called or the transaction already ended.
var ErrNoActiveTransaction = errors.New("no active transaction")

// GormUnitOfWorkFactory hands out a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer ports.StatusChangeObserver
}

// NewGormUnitOfWorkFactory creates the factory. observer may be nil.
func NewGormUnitOfWorkFactory(db *gorm.DB, observer ports.StatusChangeObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observer: observer}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		observer: f.observer,
	}
}

// GormUnitOfWork is not safe for concurrent use; every goroutine creates its
// own.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	observer ports.StatusChangeObserver
	changes  []order.StatusChanged
}

// Begin starts the transaction. A second call while it is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dberrs.Translate("begin transaction", "transaction", "", tx.Error)
	}
	uow.tx = tx
	return nil
}

// Commit makes the writes durable, then hands every status change written in
// the transaction to the observer, oldest first.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.changes = nil
		return dberrs.Translate("commit transaction", "transaction", "", err)
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and the status changes written in it.
// Orders written in the transaction must be reloaded before reuse.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.changes = nil
	if err != nil {
		return dberrs.Translate("rollback transaction", "transaction", "", err)
	}
	return nil
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) LedgerRepository() ports.LedgerRepository {
	return ledgerrepo.NewGormLedgerRepository(uow.conn())
}

// TrackStatusChanges is called by the order repository after every write.
func (uow *GormUnitOfWork) TrackStatusChanges(changes []order.StatusChanged) {
	uow.changes = append(uow.changes, changes...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	changes := uow.changes
	uow.changes = nil
	if uow.observer == nil {
		return
	}
	for _, change := range changes {
		uow.notify(ctx, change)
	}
}

func (uow *GormUnitOfWork) notify(ctx context.Context, change order.StatusChanged) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "status change observer panicked",
				"orderId", change.OrderID.String(), "panic", r)
		}
	}()
	uow.observer.OnStatusChanged(ctx, change)
}
