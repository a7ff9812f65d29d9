package commands

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand signs up a customer account. The remaining profile
// fields are validated by the user aggregate.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	fullName string
	email    string
	phone    string
	password string

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(userID kernel.UUID, fullName, email, phone, password string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		fullName: fullName,
		email:    email,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}
	if err := errors.Join(userID.Validate(), cmd.setPassword(password)); err != nil {
		return RegisterUserCommand{}, err
	}
	cmd.userID = userID
	return cmd, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterUserCommand) FullName() string    { return c.fullName }
func (c RegisterUserCommand) Email() string       { return c.email }
func (c RegisterUserCommand) Phone() string       { return c.phone }
func (c RegisterUserCommand) Password() string    { return c.password }

func (c *RegisterUserCommand) setPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errs.NewValueIsRequiredError("password")
	}
	// bcrypt ignores input beyond 72 bytes.
	if n := utf8.RuneCountInString(password); n < MinPasswordLength || len(password) > MaxPasswordLength {
		return errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be %d to %d bytes long", MinPasswordLength, MaxPasswordLength))
	}
	c.password = password
	return nil
}
