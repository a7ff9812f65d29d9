package commands

import (
	"errors"

	"cargo/internal/pkg/guard"
)

var ErrBootstrapAdminCommandIsNotConstructed = errors.New(
	"BootstrapAdminCommand must be created via NewBootstrapAdminCommand constructor",
)

// BootstrapAdminCommand makes sure a super admin account with the configured
// e-mail exists. It is run once at startup.
type BootstrapAdminCommand struct { //nolint:recvcheck //using for validation
	register RegisterUserCommand

	guard guard.ConstructorGuard
}

func NewBootstrapAdminCommand(register RegisterUserCommand) (BootstrapAdminCommand, error) {
	if err := register.Validate(); err != nil {
		return BootstrapAdminCommand{}, err
	}
	return BootstrapAdminCommand{register: register, guard: guard.NewConstructorGuard()}, nil
}

func (c BootstrapAdminCommand) Validate() error {
	return c.guard.Validate(ErrBootstrapAdminCommandIsNotConstructed)
}

func (c BootstrapAdminCommand) Register() RegisterUserCommand { return c.register }
