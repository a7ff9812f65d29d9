package commands

import (
	"errors"
	"strings"
	"time"

	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrRelayLedgerCommandIsNotConstructed = errors.New(
	"RelayLedgerCommand must be created via NewRelayLedgerCommand constructor",
)

// RelayLedgerCommand publishes the next batch of committed ledger records
// after the named cursor. Records younger than settle are held back so that a
// transaction that took its sequence number earlier but commits later is not
// skipped.
type RelayLedgerCommand struct { //nolint:recvcheck //using for validation
	cursor    string
	batchSize int
	settle    time.Duration

	guard guard.ConstructorGuard
}

func NewRelayLedgerCommand(cursor string, batchSize int, settle time.Duration) (RelayLedgerCommand, error) {
	cursor = strings.TrimSpace(cursor)
	var errList []error
	if cursor == "" {
		errList = append(errList, errs.NewValueIsRequiredError("cursor"))
	}
	if batchSize < 1 || batchSize > 10000 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 10000))
	}
	if settle < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("settle", settle, time.Duration(0), "unbounded"))
	}
	if err := errors.Join(errList...); err != nil {
		return RelayLedgerCommand{}, err
	}
	return RelayLedgerCommand{
		cursor:    cursor,
		batchSize: batchSize,
		settle:    settle,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RelayLedgerCommand) Validate() error {
	return c.guard.Validate(ErrRelayLedgerCommandIsNotConstructed)
}

func (c RelayLedgerCommand) Cursor() string        { return c.cursor }
func (c RelayLedgerCommand) BatchSize() int        { return c.batchSize }
func (c RelayLedgerCommand) Settle() time.Duration { return c.settle }
