package ports

import "context"

// LedgerPublisher delivers committed ledger records to downstream consumers.
// Publish returns only after every record was accepted.
type LedgerPublisher interface {
	Publish(ctx context.Context, records []LedgerRecord) error
}
