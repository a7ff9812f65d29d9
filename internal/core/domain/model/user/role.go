package user

import (
	"fmt"
	"strings"

	"cargo/internal/pkg/errs"
)

type Role int

const (
	UnknownRole Role = iota
	Customer
	OrderProcessor
	WarehouseManager
	Admin
	SuperAdmin
)

var roleNames = map[Role]string{
	Customer:         "CUSTOMER",
	OrderProcessor:   "ORDER_PROCESSOR",
	WarehouseManager: "WAREHOUSE_MANAGER",
	Admin:            "ADMIN",
	SuperAdmin:       "SUPER_ADMIN",
}

var roleLabels = map[Role]string{
	Customer:         "Customer",
	OrderProcessor:   "Order Processor",
	WarehouseManager: "Warehouse Manager",
	Admin:            "Administrator",
	SuperAdmin:       "Super Administrator",
}

// ParseRole accepts a wire name such as "ORDER_PROCESSOR", ignoring case.
func ParseRole(s string) (Role, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return UnknownRole, errs.NewValueIsRequiredError("role")
	}
	for role, wire := range roleNames {
		if wire == name {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return "Unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// IsStaff reports whether the role works on other people's orders.
func (r Role) IsStaff() bool {
	return r.Validate() == nil && r != Customer
}

// IsAdmin reports whether the role may manage accounts.
func (r Role) IsAdmin() bool {
	return r == Admin || r == SuperAdmin
}
