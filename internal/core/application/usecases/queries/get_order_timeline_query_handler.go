package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/services"
	"cargo/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderTimelineQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewGetOrderTimelineQueryHandler(db *gorm.DB, policy services.OrderAccessPolicy) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{db: db, policy: policy}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order and
// *errs.ActionIsForbiddenError when a customer asks for someone else's order.
func (h GetOrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTimelineQuery,
) (GetOrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	if err = h.policy.CanView(query.Actor(), resp.OwnerID); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}

	resp.History, err = h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderTimelineQueryHandler) loadOrder(ctx context.Context, id kernel.UUID) (GetOrderTimelineQueryResponse, error) {
	var (
		resp             GetOrderTimelineQueryResponse
		orderID, ownerID uuid.UUID
		ownerName        sql.NullString
		status           string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.owner_id,
			u.full_name,
			o.product_url,
			o.product_name,
			o.quantity,
			o.variation,
			o.specifications,
			o.notes,
			o.screenshot_ref,
			o.status,
			o.created_at,
			o.updated_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.owner_id
		WHERE o.id = ?
	`, id.Value()).Row()

	err := row.Scan(
		&orderID,
		&ownerID,
		&ownerName,
		&resp.ProductURL,
		&resp.ProductName,
		&resp.Quantity,
		&resp.Variation,
		&resp.Specifications,
		&resp.Notes,
		&resp.ScreenshotRef,
		&status,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTimelineQueryResponse{}, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return GetOrderTimelineQueryResponse{}, errs.NewStorageError("select order timeline", err)
	}

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderTimelineQueryResponse{}, err
	}
	resp.ID = kernel.FromUUID(orderID)
	resp.OwnerID = kernel.FromUUID(ownerID)
	resp.OwnerName = ownerName.String
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
	return resp, nil
}

func (h GetOrderTimelineQueryHandler) loadHistory(ctx context.Context, id kernel.UUID) ([]TimelineEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.status,
			h.recorded_at,
			h.actor_id,
			u.full_name
		FROM order_status_history h
		LEFT JOIN users u ON u.id = h.actor_id
		WHERE h.order_id = ?
		ORDER BY h.recorded_at, h.seq
	`, id.Value()).Rows()
	if err != nil {
		return nil, errs.NewStorageError("select order history", err)
	}
	defer rows.Close()

	history := make([]TimelineEntry, 0)
	for rows.Next() {
		var (
			entryID, actorID uuid.UUID
			status           string
			recordedAt       time.Time
			actorName        sql.NullString
		)
		if err = rows.Scan(&entryID, &status, &recordedAt, &actorID, &actorName); err != nil {
			return nil, errs.NewStorageError("scan order history", err)
		}

		parsed, parseErr := order.ParseStatus(status)
		if parseErr != nil {
			return nil, parseErr
		}
		history = append(history, TimelineEntry{
			ID:         kernel.FromUUID(entryID),
			Status:     parsed,
			RecordedAt: recordedAt.UTC(),
			ActorID:    kernel.FromUUID(actorID),
			ActorName:  actorName.String,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("iterate order history", err)
	}
	return history, nil
}
