package commands

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

// BootstrapAdminCommandHandler creates the configured account as a verified
// super admin, or promotes it if it already exists with another role. An
// existing password is left untouched.
type BootstrapAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
}

func NewBootstrapAdminCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
) BootstrapAdminCommandHandler {
	return BootstrapAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

// Handle reports whether the account was created.
func (h *BootstrapAdminCommandHandler) Handle(ctx context.Context, cmd BootstrapAdminCommand) (*user.User, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}
	reg := cmd.Register()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	existing, err := userRepo.GetByEmail(ctx, user.NormalizeEmail(reg.Email()))
	switch {
	case err == nil:
		if existing.Role() == user.SuperAdmin {
			return existing, false, nil
		}
		if err = existing.ChangeRole(user.SuperAdmin); err != nil {
			return nil, false, err
		}
		if err = userRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	hash, err := h.hasher.Hash(reg.Password())
	if err != nil {
		return nil, false, err
	}
	admin, err := user.NewUser(reg.UserID(), reg.FullName(), reg.Email(), reg.Phone(), hash, h.clock.Now())
	if err != nil {
		return nil, false, err
	}
	if err = admin.ChangeRole(user.SuperAdmin); err != nil {
		return nil, false, err
	}
	admin.MarkVerified()

	if err = userRepo.Add(ctx, admin); err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}
	return admin, true, nil
}
