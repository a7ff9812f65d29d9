// Package ledgerrepo reads the order status ledger in insertion order for the
// relay and keeps its named cursors.
package ledgerrepo

import "time"

// LedgerCursorDTO remembers the last ledger seq a relay has handed off.
type LedgerCursorDTO struct {
	Name      string `gorm:"size:64;primaryKey"`
	Seq       uint64 `gorm:"not null"`
	UpdatedAt time.Time
}

func (LedgerCursorDTO) TableName() string {
	return "ledger_cursors"
}
