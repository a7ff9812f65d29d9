package commands

import (
	"errors"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

type ChangeUserRoleCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	role   user.Role
	actor  user.Actor

	guard guard.ConstructorGuard
}

func NewChangeUserRoleCommand(userID kernel.UUID, role user.Role, actor user.Actor) (ChangeUserRoleCommand, error) {
	if err := errors.Join(userID.Validate(), role.Validate(), actor.Validate()); err != nil {
		return ChangeUserRoleCommand{}, err
	}
	return ChangeUserRoleCommand{
		userID: userID,
		role:   role,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

func (c ChangeUserRoleCommand) UserID() kernel.UUID { return c.userID }
func (c ChangeUserRoleCommand) Role() user.Role     { return c.role }
func (c ChangeUserRoleCommand) Actor() user.Actor   { return c.actor }
