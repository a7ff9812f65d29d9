// Package services provides domain services for rules that span more than one
// aggregate of the cargo service.
//
// The package includes:
//   - OrderAccessPolicy: decides which actor may create, view, list and advance
//     orders and who may change account roles
package services
