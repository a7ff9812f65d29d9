package userrepo

import (
	"context"

	"cargo/internal/adapters/out/postgres/dberrs"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM. E-mail
// uniqueness is enforced by the users.email unique index.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Translate("insert user", "email", u.Email(), err)
	}
	return nil
}

// Update writes every mutable column, including ones reset to their zero
// value.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("full_name", "email", "phone", "password_hash", "role", "is_verified").
		Updates(&dto)
	if result.Error != nil {
		return dberrs.Translate("update user", "email", u.Email(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userId", u.ID().String())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Value()).Error; err != nil {
		return nil, dberrs.Translate("select user", "userId", id.String(), err)
	}
	return toDomain(dto)
}

// GetByEmail looks the account up by its normalized e-mail.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", email).Error; err != nil {
		return nil, dberrs.Translate("select user", "email", email, err)
	}
	return toDomain(dto)
}

func (r *GormUserRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", id.Value()).Count(&count).Error; err != nil {
		return false, dberrs.Translate("count users", "userId", id.String(), err)
	}
	return count > 0, nil
}
