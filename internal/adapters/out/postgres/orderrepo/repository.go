package orderrepo

import (
	"context"

	"cargo/internal/adapters/out/postgres/dberrs"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

// changeTracker collects the status changes written through the repository so
// they can be published once the surrounding transaction commits.
type changeTracker interface {
	TrackStatusChanges(changes []order.StatusChanged)
}

func NewGormOrderRepository(db *gorm.DB, tracker changeTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row and its whole ledger. On success the aggregate's
// pending entries count as persisted.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Translate("insert order", "orderId", aggregate.ID().String(), err)
	}

	if err := r.insertEntries(ctx, aggregate.ID(), aggregate.PendingEntries()); err != nil {
		return err
	}

	r.markPersisted(aggregate)
	return nil
}

// Update writes the new current state and appends the pending ledger entries.
// The row is only touched if its version still equals the version the
// aggregate was loaded with; otherwise a concurrent writer got there first and
// a *errs.ConcurrentModificationError is returned. On success the pending
// entries count as persisted, so the same aggregate can be advanced and
// updated again.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.PersistedVersion()).
		Updates(map[string]any{
			"status":     dto.Status,
			"version":    dto.Version,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return dberrs.Translate("update order", "orderId", aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
		}
		return errs.NewConcurrentModificationError("order", aggregate.ID().String())
	}

	if err := r.insertEntries(ctx, aggregate.ID(), aggregate.PendingEntries()); err != nil {
		return err
	}

	r.markPersisted(aggregate)
	return nil
}

func (r *GormOrderRepository) markPersisted(aggregate *order.Order) {
	changes := aggregate.StatusChanges()
	aggregate.ClearPending()
	if r.tracker != nil && len(changes) > 0 {
		r.tracker.TrackStatusChanges(changes)
	}
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate is Get plus a row lock on the order that is held until the
// surrounding transaction ends. Outside a transaction it behaves like Get.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Value()).Error; err != nil {
		return nil, dberrs.Translate("select order", "orderId", id.String(), err)
	}

	var entries []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", id.Value()).
		Order("recorded_at, seq").
		Find(&entries).Error
	if err != nil {
		return nil, dberrs.Translate("select order history", "orderId", id.String(), err)
	}

	return toDomain(dto, entries)
}

func (r *GormOrderRepository) insertEntries(ctx context.Context, orderID kernel.UUID, entries []order.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	dtos := entriesFromDomain(orderID, entries)
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dberrs.Translate("insert order history", "historyEntryId", orderID.String(), err)
	}
	return nil
}

func (r *GormOrderRepository) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Value()).Count(&count).Error; err != nil {
		return false, dberrs.Translate("count orders", "orderId", id.String(), err)
	}
	return count > 0, nil
}
