// Package orderrepo persists the order aggregate: one row per order plus its
// append-only status ledger.
package orderrepo

import (
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the current-state row of an order. Version is the ledger length
// and guards concurrent writers.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductURL     string    `gorm:"size:2048;not null"`
	ProductName    string    `gorm:"size:300;not null"`
	Quantity       int       `gorm:"not null"`
	Variation      string    `gorm:"size:2000"`
	Specifications string    `gorm:"size:2000"`
	Notes          string    `gorm:"size:2000"`
	ScreenshotRef  string    `gorm:"size:2048"`
	Status         string    `gorm:"size:32;not null;index"`
	Version        int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryEntryDTO is one ledger row. Rows are only ever inserted. Seq is the
// store-assigned insertion order. InsertedAt is filled by the database clock
// when the row is inserted, so every replica stamps rows against the same
// clock; the ledger relay waits on it.
type HistoryEntryDTO struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index:idx_history_order_recorded,priority:1"`
	Status     string    `gorm:"size:32;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_history_order_recorded,priority:2"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	InsertedAt time.Time `gorm:"not null;index;default:CURRENT_TIMESTAMP"`
}

func (HistoryEntryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:             o.ID().Value(),
		OwnerID:        o.OwnerID().Value(),
		ProductURL:     d.ProductURL(),
		ProductName:    d.ProductName(),
		Quantity:       d.Quantity(),
		Variation:      d.Variation(),
		Specifications: d.Specifications(),
		Notes:          d.Notes(),
		ScreenshotRef:  d.ScreenshotRef(),
		Status:         o.Status().String(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

func entriesFromDomain(orderID kernel.UUID, entries []order.HistoryEntry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, HistoryEntryDTO{
			ID:         e.ID().Value(),
			OrderID:    orderID.Value(),
			Status:     e.Status().String(),
			RecordedAt: e.RecordedAt(),
			ActorID:    e.ActorID().Value(),
		})
	}
	return dtos
}

// EntryToDomain rebuilds a single ledger entry. It is shared with the ledger
// relay, which reads the same rows.
func EntryToDomain(dto HistoryEntryDTO) (order.HistoryEntry, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	return order.RestoreHistoryEntry(kernel.FromUUID(dto.ID), status, dto.RecordedAt, kernel.FromUUID(dto.ActorID))
}

func toDomain(dto OrderDTO, entries []HistoryEntryDTO) (*order.Order, error) {
	details, err := order.NewProductDetails(
		dto.ProductURL,
		dto.ProductName,
		dto.Quantity,
		dto.Variation,
		dto.Specifications,
		dto.Notes,
		dto.ScreenshotRef,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry, entryErr := EntryToDomain(e)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		kernel.FromUUID(dto.ID),
		kernel.FromUUID(dto.OwnerID),
		details,
		status,
		dto.CreatedAt,
		dto.UpdatedAt,
		history,
	)
}
