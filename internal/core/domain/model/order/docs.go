// Package order provides the Order aggregate of the cargo service: a purchase
// request that moves through a fixed lifecycle while every move is recorded in
// an append-only status ledger.
//
// The package includes:
//   - Order: the aggregate root holding product details, owner and current status
//   - Status: the closed lifecycle enumeration and its transition table
//   - HistoryEntry: one immutable ledger record (status entered, when, by whom)
//   - ProductDetails: the validated description of what the customer wants bought
//   - StatusChanged: the event emitted for every ledger append once it is committed
//
// Key business rules:
//   - A new order starts in Requested with exactly one Requested ledger entry
//   - Requested -> Purchased -> InWarehouse -> InTransit -> Arrived -> Completed
//   - Declined is reachable from every non-terminal status
//   - Completed and Declined are terminal
//   - The current status always equals the status of the newest ledger entry
//   - Ledger entries are never edited or removed and their timestamps never go backwards
package order
