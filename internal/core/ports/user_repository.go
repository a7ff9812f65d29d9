package ports

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
)

type UserRepository interface {
	// Add fails with errs.ObjectAlreadyExistsError when the e-mail is taken.
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
