package http

import (
	"net/http"
	"time"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/order"
	"cargo/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, role string) (string, time.Time, error)
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	registerUserHandler       commands.RegisterUserCommandHandler
	changeUserRoleHandler     commands.ChangeUserRoleCommandHandler
	createOrderHandler        commands.CreateOrderCommandHandler
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler

	// Query handlers
	authenticateUserHandler queries.AuthenticateUserQueryHandler
	listUsersHandler        queries.ListUsersQueryHandler
	listOrdersHandler       queries.ListOrdersQueryHandler
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler

	tokens TokenIssuer
}

var _ ServerInterface = (*Server)(nil)

func NewServer(
	registerUserHandler commands.RegisterUserCommandHandler,
	changeUserRoleHandler commands.ChangeUserRoleCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	authenticateUserHandler queries.AuthenticateUserQueryHandler,
	listUsersHandler queries.ListUsersQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderTimelineHandler queries.GetOrderTimelineQueryHandler,
	tokens TokenIssuer,
) *Server {
	return &Server{
		registerUserHandler:       registerUserHandler,
		changeUserRoleHandler:     changeUserRoleHandler,
		createOrderHandler:        createOrderHandler,
		advanceOrderStatusHandler: advanceOrderStatusHandler,
		authenticateUserHandler:   authenticateUserHandler,
		listUsersHandler:          listUsersHandler,
		listOrdersHandler:         listOrdersHandler,
		getOrderTimelineHandler:   getOrderTimelineHandler,
		tokens:                    tokens,
	}
}

// RegisterUser handles POST /api/v1/auth/register.
func (s *Server) RegisterUser(ctx echo.Context) error {
	var req RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(ctx)
	}

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	registered, err := s.registerUserHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, userFromDomain(registered))
}

// Login handles POST /api/v1/auth/login.
func (s *Server) Login(ctx echo.Context) error {
	var req LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(ctx)
	}

	query, err := queries.NewAuthenticateUserQuery(req.Email, req.Password)
	if err != nil {
		return writeError(ctx, err)
	}

	account, err := s.authenticateUserHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	token, expiresAt, err := s.tokens.Issue(account.ID.String(), account.Role.String())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userFromAuthenticated(account),
	})
}

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(ctx echo.Context, params ListUsersParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var role *user.Role
	if params.Role != nil {
		parsed, err := user.ParseRole(*params.Role)
		if err != nil {
			return writeError(ctx, err)
		}
		role = &parsed
	}
	limit, offset := paging(params.Limit, params.Offset)

	query, err := queries.NewListUsersQuery(actor, role, limit, offset)
	if err != nil {
		return writeError(ctx, err)
	}

	list, err := s.listUsersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]User, len(list))
	for i, u := range list {
		response[i] = userFromQuery(u)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ChangeUserRole handles PUT /api/v1/users/{userId}/role.
func (s *Server) ChangeUserRole(ctx echo.Context, userID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req ChangeRoleRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(ctx)
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewChangeUserRoleCommand(kernel.FromUUID(userID), role, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	changed, err := s.changeUserRoleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, userFromDomain(changed))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(ctx)
	}

	details, err := order.NewProductDetails(
		req.ProductURL, req.ProductName, req.Quantity,
		req.Variation, req.Specifications, req.Notes, req.ScreenshotRef,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.FromUUID(req.OwnerID), actor, details)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var ownerID *kernel.UUID
	if params.OwnerID != nil {
		id := kernel.FromUUID(*params.OwnerID)
		ownerID = &id
	}
	var status *order.Status
	if params.Status != nil {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return writeError(ctx, err)
		}
		status = &parsed
	}
	limit, offset := paging(params.Limit, params.Offset)

	query, err := queries.NewListOrdersQuery(actor, ownerID, status, limit, offset)
	if err != nil {
		return writeError(ctx, err)
	}

	list, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]OrderSummary, len(list))
	for i, o := range list {
		response[i] = summaryFromQuery(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req AdvanceStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return invalidBody(ctx)
	}
	next, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(kernel.FromUUID(orderID), next, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	advanced, err := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(advanced))
}

// GetOrderTimeline handles GET /api/v1/orders/{orderId}/timeline.
func (s *Server) GetOrderTimeline(ctx echo.Context, orderID openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderTimelineQuery(kernel.FromUUID(orderID), actor)
	if err != nil {
		return writeError(ctx, err)
	}

	timeline, err := s.getOrderTimelineHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, timelineFromQuery(timeline))
}

// paging turns absent query parameters into zero, which the queries read as
// their defaults.
func paging(limit, offset *int) (int, int) {
	var l, o int
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	return l, o
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    CodeValidationFailed,
		Message: "request body is not valid JSON for this operation",
	})
}
