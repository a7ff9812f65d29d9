package queries

import (
	"context"
	"database/sql"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewListOrdersQueryHandler(db *gorm.DB, policy services.OrderAccessPolicy) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: policy}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ownerID, err := h.policy.ListScope(query.Actor(), query.OwnerID())
	if err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).
		Table("orders AS o").
		Select(`o.id, o.owner_id, u.full_name, o.product_name, o.quantity, o.status, o.created_at, o.updated_at`).
		Joins("LEFT JOIN users u ON u.id = o.owner_id")
	if ownerID != nil {
		stmt = stmt.Where("o.owner_id = ?", ownerID.Value())
	}
	if status := query.Status(); status != nil {
		stmt = stmt.Where("o.status = ?", status.String())
	}

	rows, err := stmt.
		Order("o.created_at DESC, o.id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Rows()
	if err != nil {
		return nil, errs.NewStorageError("select orders", err)
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp      ListOrdersQueryResponse
			id, owner uuid.UUID
			ownerName sql.NullString
			status    string
		)
		err = rows.Scan(
			&id,
			&owner,
			&ownerName,
			&resp.ProductName,
			&resp.Quantity,
			&status,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, errs.NewStorageError("scan orders", err)
		}

		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		resp.ID = kernel.FromUUID(id)
		resp.OwnerID = kernel.FromUUID(owner)
		resp.OwnerName = ownerName.String
		resp.CreatedAt = resp.CreatedAt.UTC()
		resp.UpdatedAt = resp.UpdatedAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("iterate orders", err)
	}
	return orders, nil
}
