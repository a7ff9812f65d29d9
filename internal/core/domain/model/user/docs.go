// Package user models the accounts of the cargo service: customers who request
// purchases and staff who process them.
//
// Roles are ordered by privilege. Customer is the only non-staff role; Admin
// and SuperAdmin may additionally manage other accounts.
package user
