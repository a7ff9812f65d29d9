package queries

import (
	"context"
	"database/sql"
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dummyHash is compared against when the e-mail is unknown so both failure
// paths cost one bcrypt comparison.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOa8dYzCHT0xjvMTcuz5p8i1u8XQJ5Zyi"

type AuthenticateUserQueryHandler struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
}

func NewAuthenticateUserQueryHandler(db *gorm.DB, hasher ports.PasswordHasher) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db, hasher: hasher}
}

// Handle returns errs.ErrCredentialsAreInvalid for an unknown e-mail and for a
// wrong password alike.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (AuthenticateUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return AuthenticateUserQueryResponse{}, err
	}

	var (
		resp         AuthenticateUserQueryResponse
		id           uuid.UUID
		passwordHash string
		role         string
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, full_name, email, phone, password_hash, role, is_verified, created_at
		FROM users
		WHERE email = ?
	`, query.Email()).Row()

	err := row.Scan(&id, &resp.FullName, &resp.Email, &resp.Phone, &passwordHash, &role, &resp.IsVerified, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		_ = h.hasher.Compare(dummyHash, query.Password())
		return AuthenticateUserQueryResponse{}, errs.ErrCredentialsAreInvalid
	}
	if err != nil {
		return AuthenticateUserQueryResponse{}, errs.NewStorageError("select user", err)
	}

	if err = h.hasher.Compare(passwordHash, query.Password()); err != nil {
		if errors.Is(err, errs.ErrCredentialsAreInvalid) {
			return AuthenticateUserQueryResponse{}, errs.ErrCredentialsAreInvalid
		}
		return AuthenticateUserQueryResponse{}, err
	}

	if resp.Role, err = user.ParseRole(role); err != nil {
		return AuthenticateUserQueryResponse{}, err
	}
	resp.ID = kernel.FromUUID(id)
	resp.CreatedAt = resp.CreatedAt.UTC()
	return resp, nil
}
