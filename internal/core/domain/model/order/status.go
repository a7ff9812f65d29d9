package order

import (
	"fmt"
	"strings"

	"cargo/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Requested ─> Purchased ─> InWarehouse ─> InTransit ─> Arrived ─> Completed
//	    │            │             │             │           │
//	    └────────────┴─────────────┴─────────────┴───────────┴──> Declined
//
// Completed and Declined are terminal. The transition table below is the only
// place the allowed moves are defined.
type Status int

const (
	// Unknown is the zero value and never a valid order status.
	Unknown Status = iota
	Requested
	Purchased
	InWarehouse
	InTransit
	Arrived
	Completed
	Declined
)

// wire names are persisted in the store and exchanged over HTTP.
var statusNames = map[Status]string{
	Requested:   "REQUESTED",
	Purchased:   "PURCHASED",
	InWarehouse: "IN_WAREHOUSE",
	InTransit:   "IN_TRANSIT",
	Arrived:     "ARRIVED",
	Completed:   "COMPLETED",
	Declined:    "DECLINED",
}

var statusLabels = map[Status]string{
	Requested:   "Requested",
	Purchased:   "Purchased in China",
	InWarehouse: "In Warehouse",
	InTransit:   "In Ship/Airplane",
	Arrived:     "Arrived in Rwanda",
	Completed:   "Delivered / Completed",
	Declined:    "Declined",
}

var transitions = map[Status][]Status{
	Requested:   {Purchased, Declined},
	Purchased:   {InWarehouse, Declined},
	InWarehouse: {InTransit, Declined},
	InTransit:   {Arrived, Declined},
	Arrived:     {Completed, Declined},
	Completed:   nil,
	Declined:    nil,
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Requested, Purchased, InWarehouse, InTransit, Arrived, Completed, Declined}
}

// ParseStatus accepts a wire name (case-insensitive, surrounding spaces ignored).
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, wire := range statusNames {
		if wire == name {
			return status, nil
		}
	}
	if name == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known order status", s))
}

// String returns the wire name, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label returns the customer-facing description of the status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// Successors returns the statuses s may move to. The result is a copy.
func (s Status) Successors() []Status {
	return append([]Status(nil), transitions[s]...)
}

// CanTransitionTo reports whether next is an allowed successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next when the move is allowed. Repeats, skips, backward
// moves and moves out of a terminal status fail with
// errs.StatusTransitionIsInvalidError carrying both wire names.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewStatusTransitionIsInvalidError(s.String(), next.String())
	}
	return next, nil
}
