package http

import (
	"time"

	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type CreateOrderRequest struct {
	OwnerID        openapi_types.UUID `json:"ownerId"`
	ProductURL     string             `json:"productUrl"`
	ProductName    string             `json:"productName"`
	Quantity       int                `json:"quantity"`
	Variation      string             `json:"variation,omitempty"`
	Specifications string             `json:"specifications,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	ScreenshotRef  string             `json:"screenshotRef,omitempty"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

type User struct {
	ID         openapi_types.UUID `json:"id"`
	FullName   string             `json:"fullName"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Role       string             `json:"role"`
	IsVerified bool               `json:"isVerified"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

type HistoryEntry struct {
	ID          openapi_types.UUID  `json:"id"`
	Status      string              `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	Timestamp   time.Time           `json:"timestamp"`
	ActorID     *openapi_types.UUID `json:"actorId,omitempty"`
	ActorName   string              `json:"actorName,omitempty"`
}

type Order struct {
	ID             openapi_types.UUID `json:"id"`
	OwnerID        openapi_types.UUID `json:"ownerId"`
	OwnerName      string             `json:"ownerName,omitempty"`
	ProductURL     string             `json:"productUrl"`
	ProductName    string             `json:"productName"`
	Quantity       int                `json:"quantity"`
	Variation      string             `json:"variation,omitempty"`
	Specifications string             `json:"specifications,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	ScreenshotRef  string             `json:"screenshotRef,omitempty"`
	Status         string             `json:"status"`
	StatusLabel    string             `json:"statusLabel"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	History        []HistoryEntry     `json:"history,omitempty"`
}

type OrderSummary struct {
	ID          openapi_types.UUID `json:"id"`
	OwnerID     openapi_types.UUID `json:"ownerId"`
	OwnerName   string             `json:"ownerName,omitempty"`
	ProductName string             `json:"productName"`
	Quantity    int                `json:"quantity"`
	Status      string             `json:"status"`
	StatusLabel string             `json:"statusLabel"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type Timeline struct {
	Order   Order          `json:"order"`
	History []HistoryEntry `json:"history"`
}

// Error is the body of every non-2xx response. Current and Requested are set
// only for refused status transitions.
type Error struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Current   string `json:"current,omitempty"`
	Requested string `json:"requested,omitempty"`
}

func userFromDomain(u *user.User) User {
	return User{
		ID:         u.ID().Value(),
		FullName:   u.FullName(),
		Email:      u.Email(),
		Phone:      u.Phone(),
		Role:       u.Role().String(),
		IsVerified: u.IsVerified(),
		CreatedAt:  u.CreatedAt(),
	}
}

func userFromAuthenticated(r queries.AuthenticateUserQueryResponse) User {
	return User{
		ID:         r.ID.Value(),
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		Role:       r.Role.String(),
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
}

func userFromQuery(r queries.ListUsersQueryResponse) User {
	return User{
		ID:         r.ID.Value(),
		FullName:   r.FullName,
		Email:      r.Email,
		Phone:      r.Phone,
		Role:       r.Role.String(),
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
}

func orderFromDomain(o *order.Order) Order {
	d := o.Details()
	ledger := o.History()
	history := make([]HistoryEntry, 0, len(ledger))
	for _, e := range ledger {
		entry := HistoryEntry{
			ID:          e.ID().Value(),
			Status:      e.Status().String(),
			StatusLabel: e.Status().Label(),
			Timestamp:   e.RecordedAt(),
		}
		if !e.ActorID().IsZero() {
			id := e.ActorID().Value()
			entry.ActorID = &id
		}
		history = append(history, entry)
	}

	return Order{
		ID:             o.ID().Value(),
		OwnerID:        o.OwnerID().Value(),
		ProductURL:     d.ProductURL(),
		ProductName:    d.ProductName(),
		Quantity:       d.Quantity(),
		Variation:      d.Variation(),
		Specifications: d.Specifications(),
		Notes:          d.Notes(),
		ScreenshotRef:  d.ScreenshotRef(),
		Status:         o.Status().String(),
		StatusLabel:    o.Status().Label(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		History:        history,
	}
}

func timelineFromQuery(r queries.GetOrderTimelineQueryResponse) Timeline {
	history := make([]HistoryEntry, 0, len(r.History))
	for _, e := range r.History {
		entry := HistoryEntry{
			ID:          e.ID.Value(),
			Status:      e.Status.String(),
			StatusLabel: e.Status.Label(),
			Timestamp:   e.RecordedAt,
			ActorName:   e.ActorName,
		}
		if !e.ActorID.IsZero() {
			id := e.ActorID.Value()
			entry.ActorID = &id
		}
		history = append(history, entry)
	}

	return Timeline{
		Order: Order{
			ID:             r.ID.Value(),
			OwnerID:        r.OwnerID.Value(),
			OwnerName:      r.OwnerName,
			ProductURL:     r.ProductURL,
			ProductName:    r.ProductName,
			Quantity:       r.Quantity,
			Variation:      r.Variation,
			Specifications: r.Specifications,
			Notes:          r.Notes,
			ScreenshotRef:  r.ScreenshotRef,
			Status:         r.Status.String(),
			StatusLabel:    r.Status.Label(),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		},
		History: history,
	}
}

func summaryFromQuery(r queries.ListOrdersQueryResponse) OrderSummary {
	return OrderSummary{
		ID:          r.ID.Value(),
		OwnerID:     r.OwnerID.Value(),
		OwnerName:   r.OwnerName,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		Status:      r.Status.String(),
		StatusLabel: r.Status.Label(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
