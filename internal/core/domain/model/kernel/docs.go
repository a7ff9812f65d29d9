// Package kernel holds the value objects shared by the order and user
// aggregates. Today that is the UUID identifier used for orders, users and
// ledger entries.
package kernel
