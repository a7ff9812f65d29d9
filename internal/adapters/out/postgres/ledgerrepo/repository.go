package ledgerrepo

import (
	"context"
	"time"

	"cargo/internal/adapters/out/postgres/dberrs"
	"cargo/internal/adapters/out/postgres/orderrepo"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository implements ports.LedgerRepository using GORM.
type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) ListAfter(
	ctx context.Context,
	afterSeq uint64,
	notAfter time.Time,
	limit int,
) ([]ports.LedgerRecord, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []orderrepo.HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("seq > ? AND inserted_at <= ?", afterSeq, notAfter.UTC()).
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, dberrs.Translate("select ledger", "seq", afterSeq, err)
	}

	records := make([]ports.LedgerRecord, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := orderrepo.EntryToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		records = append(records, ports.LedgerRecord{
			Seq:        dto.Seq,
			EntryID:    entry.ID(),
			OrderID:    kernel.FromUUID(dto.OrderID),
			ActorID:    entry.ActorID(),
			Status:     entry.Status(),
			RecordedAt: entry.RecordedAt(),
		})
	}
	return records, nil
}

// LockCursor creates the cursor at zero on first use. The select takes a row
// lock (a no-op on SQLite, which serializes writers anyway).
func (r *GormLedgerRepository) LockCursor(ctx context.Context, name string) (uint64, error) {
	if name == "" {
		return 0, errs.NewValueIsRequiredError("cursor")
	}

	seed := LedgerCursorDTO{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
	if err != nil {
		return 0, dberrs.Translate("insert ledger cursor", "cursor", name, err)
	}

	var cursor LedgerCursorDTO
	err = r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cursor, "name = ?", name).Error
	if err != nil {
		return 0, dberrs.Translate("lock ledger cursor", "cursor", name, err)
	}
	return cursor.Seq, nil
}

func (r *GormLedgerRepository) SaveCursor(ctx context.Context, name string, seq uint64) error {
	result := r.db.WithContext(ctx).
		Model(&LedgerCursorDTO{}).
		Where("name = ?", name).
		Update("seq", seq)
	if result.Error != nil {
		return dberrs.Translate("update ledger cursor", "cursor", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cursor", name)
	}
	return nil
}
