package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type ListUsersParams struct {
	Role   *string
	Limit  *int
	Offset *int
}

type ListOrdersParams struct {
	OwnerID *openapi_types.UUID
	Status  *string
	Limit   *int
	Offset  *int
}

// ServerInterface lists the operations of the OpenAPI document.
type ServerInterface interface {
	RegisterUser(ctx echo.Context) error
	Login(ctx echo.Context) error
	ListUsers(ctx echo.Context, params ListUsersParams) error
	ChangeUserRole(ctx echo.Context, userID openapi_types.UUID) error
	CreateOrder(ctx echo.Context) error
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	AdvanceOrderStatus(ctx echo.Context, orderID openapi_types.UUID) error
	GetOrderTimeline(ctx echo.Context, orderID openapi_types.UUID) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RegisterUser(ctx echo.Context) error {
	return w.Handler.RegisterUser(ctx)
}

func (w *ServerInterfaceWrapper) Login(ctx echo.Context) error {
	return w.Handler.Login(ctx)
}

func (w *ServerInterfaceWrapper) ListUsers(ctx echo.Context) error {
	var params ListUsersParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "role", query, &params.Role); err != nil {
		return badParameter(ctx, "role", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return badParameter(ctx, "limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &params.Offset); err != nil {
		return badParameter(ctx, "offset", err)
	}
	return w.Handler.ListUsers(ctx, params)
}

func (w *ServerInterfaceWrapper) ChangeUserRole(ctx echo.Context) error {
	var userID openapi_types.UUID
	if err := bindPathUUID(ctx, "userId", &userID); err != nil {
		return badParameter(ctx, "userId", err)
	}
	return w.Handler.ChangeUserRole(ctx, userID)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, false, "ownerId", query, &params.OwnerID); err != nil {
		return badParameter(ctx, "ownerId", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", query, &params.Status); err != nil {
		return badParameter(ctx, "status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		return badParameter(ctx, "limit", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &params.Offset); err != nil {
		return badParameter(ctx, "offset", err)
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) AdvanceOrderStatus(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPathUUID(ctx, "orderId", &orderID); err != nil {
		return badParameter(ctx, "orderId", err)
	}
	return w.Handler.AdvanceOrderStatus(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GetOrderTimeline(ctx echo.Context) error {
	var orderID openapi_types.UUID
	if err := bindPathUUID(ctx, "orderId", &orderID); err != nil {
		return badParameter(ctx, "orderId", err)
	}
	return w.Handler.GetOrderTimeline(ctx, orderID)
}

func bindPathUUID(ctx echo.Context, name string, dest *openapi_types.UUID) error {
	return runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
}

func badParameter(ctx echo.Context, name string, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    CodeValidationFailed,
		Message: "invalid format for parameter " + name + ": " + err.Error(),
		Field:   name,
	})
}

// RegisterHandlers mounts the API on router. Public routes run validate only;
// the rest run auth first so anonymous callers get 401 before any 400.
func RegisterHandlers(router *echo.Echo, si ServerInterface, auth, validate echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	v1 := router.Group("/api/v1")
	v1.POST("/auth/register", w.RegisterUser, validate)
	v1.POST("/auth/login", w.Login, validate)

	v1.GET("/users", w.ListUsers, auth, validate)
	v1.PUT("/users/:userId/role", w.ChangeUserRole, auth, validate)
	v1.POST("/orders", w.CreateOrder, auth, validate)
	v1.GET("/orders", w.ListOrders, auth, validate)
	v1.PUT("/orders/:orderId/status", w.AdvanceOrderStatus, auth, validate)
	v1.GET("/orders/:orderId/timeline", w.GetOrderTimeline, auth, validate)
}
