package order

import (
	"errors"
	"fmt"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned by Validate for an Order that did not
// come from NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the lifecycle. Its status only changes
// through AdvanceStatus, and every change appends one HistoryEntry. Entries
// appended since the order was built or loaded are pending until a repository
// writes them and calls ClearPending.
type Order struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	details   ProductDetails
	status    Status
	createdAt time.Time
	updatedAt time.Time

	history   []HistoryEntry
	persisted int

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Requested with its first ledger entry, recorded
// at now on behalf of actorID.
func NewOrder(id, ownerID kernel.UUID, details ProductDetails, actorID kernel.UUID, now time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateOwner(ownerID),
		details.Validate(),
		validateActor(actorID),
	); err != nil {
		return nil, err
	}

	at := normalizeTime(now)
	o := &Order{
		id:        id,
		ownerID:   ownerID,
		details:   details,
		status:    Requested,
		createdAt: at,
		updatedAt: at,
		guard:     guard.NewConstructorGuard(),
	}
	o.history = []HistoryEntry{{id: kernel.NewUUID(), status: Requested, recordedAt: at, actorID: actorID}}
	return o, nil
}

// RestoreOrder rebuilds an order from the store. The ledger must be non-empty,
// start with Requested, follow the transition table, and end in status.
func RestoreOrder(
	id, ownerID kernel.UUID,
	details ProductDetails,
	status Status,
	createdAt, updatedAt time.Time,
	history []HistoryEntry,
) (*Order, error) {
	if err := errors.Join(id.Validate(), validateOwner(ownerID), details.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if err := validateLedger(status, history); err != nil {
		return nil, err
	}

	return &Order{
		id:        id,
		ownerID:   ownerID,
		details:   details,
		status:    status,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		history:   append([]HistoryEntry(nil), history...),
		persisted: len(history),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) OwnerID() kernel.UUID    { return o.ownerID }
func (o *Order) Details() ProductDetails { return o.details }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// History returns the full ledger, oldest first. The slice is a copy.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// Version is the ledger length including pending entries.
func (o *Order) Version() int {
	return len(o.history)
}

// PersistedVersion is the ledger length the store held when the order was
// loaded. Writers use it as the optimistic concurrency token.
func (o *Order) PersistedVersion() int {
	return o.persisted
}

// PendingEntries returns the entries appended since construction or loading.
func (o *Order) PendingEntries() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history[o.persisted:]...)
}

// StatusChanges describes the pending entries as events, oldest first.
func (o *Order) StatusChanges() []StatusChanged {
	changes := make([]StatusChanged, 0, len(o.history)-o.persisted)
	for i := o.persisted; i < len(o.history); i++ {
		from := Unknown
		if i > 0 {
			from = o.history[i-1].status
		}
		entry := o.history[i]
		changes = append(changes, StatusChanged{
			OrderID:    o.id,
			OwnerID:    o.ownerID,
			EntryID:    entry.id,
			ActorID:    entry.actorID,
			From:       from,
			To:         entry.status,
			OccurredAt: entry.recordedAt,
			Version:    i + 1,
		})
	}
	return changes
}

// ClearPending marks every entry as persisted.
func (o *Order) ClearPending() {
	o.persisted = len(o.history)
}

// AdvanceStatus moves the order to next and appends the matching ledger entry.
// The entry is recorded at the later of at and the newest entry's time, so the
// ledger never goes backwards when clocks disagree. On failure the order is
// left unchanged.
func (o *Order) AdvanceStatus(next Status, actorID kernel.UUID, at time.Time) error {
	if err := validateActor(actorID); err != nil {
		return err
	}
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	recordedAt := normalizeTime(at)
	if last := o.history[len(o.history)-1].recordedAt; recordedAt.Before(last) {
		recordedAt = last
	}

	o.history = append(o.history, HistoryEntry{
		id:         kernel.NewUUID(),
		status:     newStatus,
		recordedAt: recordedAt,
		actorID:    actorID,
	})
	o.status = newStatus
	o.updatedAt = recordedAt
	return nil
}

func validateOwner(ownerID kernel.UUID) error {
	if ownerID.IsZero() {
		return errs.NewValueIsRequiredError("ownerId")
	}
	return nil
}

func validateActor(actorID kernel.UUID) error {
	if actorID.IsZero() {
		return errs.NewValueIsRequiredError("actorId")
	}
	return nil
}

func validateLedger(status Status, history []HistoryEntry) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("history")
	}
	if history[0].status != Requested {
		return errs.NewValueIsInvalidErrorWithCause("history",
			fmt.Errorf("ledger starts with %s instead of %s", history[0].status, Requested))
	}
	for i := 1; i < len(history); i++ {
		prev, cur := history[i-1], history[i]
		if !prev.status.CanTransitionTo(cur.status) {
			return errs.NewValueIsInvalidErrorWithCause("history",
				fmt.Errorf("entry %d moves %s -> %s", i, prev.status, cur.status))
		}
	}
	if last := history[len(history)-1].status; last != status {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("order is %s but newest ledger entry is %s", status, last))
	}
	return nil
}

// normalizeTime keeps microsecond precision, which is what PostgreSQL stores,
// so a reloaded ledger compares equal to the one that was written.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
