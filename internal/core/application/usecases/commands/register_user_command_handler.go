package commands

import (
	"context"
	"errors"

	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/ports"
	"cargo/internal/pkg/errs"
)

type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
	}
}

// Handle creates a Customer account. It fails with
// errs.ObjectAlreadyExistsError when the e-mail is already registered.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	account, err := user.NewUser(cmd.UserID(), cmd.FullName(), cmd.Email(), cmd.Phone(), hash, h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	_, err = userRepo.GetByEmail(ctx, account.Email())
	switch {
	case err == nil:
		return nil, errs.NewObjectAlreadyExistsError("email", account.Email())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = userRepo.Add(ctx, account); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}
