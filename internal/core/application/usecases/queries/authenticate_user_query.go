package queries

import (
	"errors"
	"strings"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// AuthenticateUserQuery checks an e-mail/password pair.
type AuthenticateUserQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserQuery(email, password string) (AuthenticateUserQuery, error) {
	email = user.NormalizeEmail(email)

	var errList []error
	if email == "" {
		errList = append(errList, errs.NewValueIsRequiredError("email"))
	}
	if strings.TrimSpace(password) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(errList...); err != nil {
		return AuthenticateUserQuery{}, err
	}

	return AuthenticateUserQuery{
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

func (q AuthenticateUserQuery) Email() string    { return q.email }
func (q AuthenticateUserQuery) Password() string { return q.password }

type AuthenticateUserQueryResponse struct {
	ID         kernel.UUID
	FullName   string
	Email      string
	Phone      string
	Role       user.Role
	IsVerified bool
	CreatedAt  time.Time
}

// Actor is the identity a session token is issued for.
func (r AuthenticateUserQueryResponse) Actor() user.Actor {
	return user.Actor{ID: r.ID, Role: r.Role}
}
