// Package queries holds the read side: order timelines, order and account
// lists, and login.
// Handlers read with raw SQL through GORM and never load aggregates; access
// rules come from services.OrderAccessPolicy.
package queries
