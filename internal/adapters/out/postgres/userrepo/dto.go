// Package userrepo persists user accounts.
package userrepo

import (
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"size:200;not null"`
	Email        string    `gorm:"size:320;not null;uniqueIndex"`
	Phone        string    `gorm:"size:32"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:32;not null;index"`
	IsVerified   bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Value(),
		FullName:     u.FullName(),
		Email:        u.Email(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		IsVerified:   u.IsVerified(),
		CreatedAt:    u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(
		kernel.FromUUID(dto.ID),
		dto.FullName,
		dto.Email,
		dto.Phone,
		dto.PasswordHash,
		role,
		dto.IsVerified,
		dto.CreatedAt,
	)
}
