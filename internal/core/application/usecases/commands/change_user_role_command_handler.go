package commands

import (
	"context"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/domain/services"
)

type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.OrderAccessPolicy
}

func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory, policy services.OrderAccessPolicy) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

func (h *ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	// Non-admins are refused before the target is looked up.
	if !cmd.Actor().IsAdmin() {
		return nil, h.policy.CanChangeRole(cmd.Actor(), nil, cmd.Role())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	target, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanChangeRole(cmd.Actor(), target, cmd.Role()); err != nil {
		return nil, err
	}

	if err = target.ChangeRole(cmd.Role()); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return target, nil
}
