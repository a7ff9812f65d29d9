package commands

import (
	"context"
	"errors"

	"cargo/internal/core/ports"
)

// ErrNoLedgerRecords is returned when there is nothing new to relay.
var ErrNoLedgerRecords = errors.New("no ledger records to relay")

// RelayLedgerCommandHandler moves committed ledger records to the publisher in
// seq order. The cursor row is locked for the whole batch, so concurrent relays
// never publish the same batch twice, and it only advances after the publisher
// accepted every record. A crash between publish and commit re-sends the batch:
// delivery is at least once.
type RelayLedgerCommandHandler struct {
	uowFactory LedgerUoWFactory
	publisher  ports.LedgerPublisher
	clock      ports.Clock
}

func NewRelayLedgerCommandHandler(
	uowFactory LedgerUoWFactory,
	publisher ports.LedgerPublisher,
	clock ports.Clock,
) RelayLedgerCommandHandler {
	return RelayLedgerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the number of records published.
func (h *RelayLedgerCommandHandler) Handle(ctx context.Context, cmd RelayLedgerCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ledgerRepo := uow.LedgerRepository()
	position, err := ledgerRepo.LockCursor(ctx, cmd.Cursor())
	if err != nil {
		return 0, err
	}

	records, err := ledgerRepo.ListAfter(ctx, position, h.clock.Now().Add(-cmd.Settle()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrNoLedgerRecords
	}

	if err = h.publisher.Publish(ctx, records); err != nil {
		return 0, err
	}

	if err = ledgerRepo.SaveCursor(ctx, cmd.Cursor(), records[len(records)-1].Seq); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(records), nil
}
