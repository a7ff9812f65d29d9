package queries

import (
	"context"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUsersQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewListUsersQueryHandler(db *gorm.DB, policy services.OrderAccessPolicy) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db, policy: policy}
}

// Handle never returns password hashes.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]ListUsersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.CanListUsers(query.Actor()); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("users").
		Select("id, full_name, email, phone, role, is_verified, created_at")
	if role := query.Role(); role != nil {
		stmt = stmt.Where("role = ?", role.String())
	}

	rows, err := stmt.
		Order("created_at DESC, id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Rows()
	if err != nil {
		return nil, errs.NewStorageError("select users", err)
	}
	defer rows.Close()

	users := make([]ListUsersQueryResponse, 0)
	for rows.Next() {
		var (
			resp ListUsersQueryResponse
			id   uuid.UUID
			role string
		)
		err = rows.Scan(&id, &resp.FullName, &resp.Email, &resp.Phone, &role, &resp.IsVerified, &resp.CreatedAt)
		if err != nil {
			return nil, errs.NewStorageError("scan users", err)
		}

		if resp.Role, err = user.ParseRole(role); err != nil {
			return nil, err
		}
		resp.ID = kernel.FromUUID(id)
		resp.CreatedAt = resp.CreatedAt.UTC()
		users = append(users, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("iterate users", err)
	}
	return users, nil
}
