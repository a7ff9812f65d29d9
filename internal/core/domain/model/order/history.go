package order

import (
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
)

// HistoryEntry is one record of the status ledger: the order entered Status at
// RecordedAt because of ActorID. Entries are immutable.
type HistoryEntry struct {
	id         kernel.UUID
	status     Status
	recordedAt time.Time
	actorID    kernel.UUID
}

// RestoreHistoryEntry rebuilds an entry read from the store.
func RestoreHistoryEntry(id kernel.UUID, status Status, recordedAt time.Time, actorID kernel.UUID) (HistoryEntry, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if recordedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("recordedAt")
	}
	return HistoryEntry{id: id, status: status, recordedAt: recordedAt.UTC(), actorID: actorID}, nil
}

func (e HistoryEntry) ID() kernel.UUID       { return e.id }
func (e HistoryEntry) Status() Status        { return e.status }
func (e HistoryEntry) RecordedAt() time.Time { return e.recordedAt }

// ActorID is the user who caused the entry. It may be zero for entries
// imported without an actor.
func (e HistoryEntry) ActorID() kernel.UUID { return e.actorID }
