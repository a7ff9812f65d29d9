package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

const (
	maxFullNameLength = 200
	maxPhoneLength    = 32
)

// User is an account. Registration always yields a Customer; other roles are
// granted by an administrator through ChangeRole.
type User struct {
	id           kernel.UUID
	fullName     string
	email        string
	phone        string
	passwordHash string
	role         Role
	isVerified   bool
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// NewUser registers a customer account. passwordHash must already be hashed.
func NewUser(id kernel.UUID, fullName, email, phone, passwordHash string, now time.Time) (*User, error) {
	u := &User{
		role:      Customer,
		createdAt: now.UTC().Truncate(time.Microsecond),
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		u.setFullName(fullName),
		u.setEmail(email),
		u.setPhone(phone),
		u.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}
	u.id = id
	return u, nil
}

// RestoreUser rebuilds an account read from the store.
func RestoreUser(
	id kernel.UUID,
	fullName, email, phone, passwordHash string,
	role Role,
	isVerified bool,
	createdAt time.Time,
) (*User, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return nil, err
	}
	return &User{
		id:           id,
		fullName:     fullName,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		role:         role,
		isVerified:   isVerified,
		createdAt:    createdAt.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID      { return u.id }
func (u *User) FullName() string     { return u.fullName }
func (u *User) Email() string        { return u.email }
func (u *User) Phone() string        { return u.phone }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) IsVerified() bool     { return u.isVerified }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// Actor returns the identity this account acts as.
func (u *User) Actor() Actor {
	return Actor{ID: u.id, Role: u.role}
}

func (u *User) ChangeRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

// MarkVerified records that the account's contact details were confirmed.
func (u *User) MarkVerified() {
	u.isVerified = true
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) setFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return errs.NewValueIsRequiredError("fullName")
	}
	if utf8.RuneCountInString(fullName) > maxFullNameLength {
		return errs.NewValueIsInvalidErrorWithCause("fullName", fmt.Errorf("longer than %d characters", maxFullNameLength))
	}
	u.fullName = fullName
	return nil
}

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare e-mail address", email))
	}
	u.email = email
	return nil
}

func (u *User) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) > maxPhoneLength {
		return errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("longer than %d characters", maxPhoneLength))
	}
	u.phone = phone
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password")
	}
	u.passwordHash = hash
	return nil
}
