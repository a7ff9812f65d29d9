package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/core/domain/model/user"
	"cargo/internal/pkg/auth"
	"cargo/internal/pkg/logging"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const actorKey = "actor"

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate requires a valid Bearer session token and stores the caller as
// a user.Actor in the echo context.
func Authenticate(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    CodeUnauthorized,
					Message: "bearer session token is required",
				})
			}

			actor, err := actorFromToken(tokens, strings.TrimSpace(token))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{Code: CodeUnauthorized, Message: auth.ErrTokenIsInvalid.Error()})
			}

			c.Set(actorKey, actor)
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("actorId", actor.ID.String(), "actorRole", actor.Role.String())
			c.SetRequest(c.Request().WithContext(logging.IntoContext(ctx, l)))
			return next(c)
		}
	}
}

func actorFromToken(tokens TokenParser, token string) (user.Actor, error) {
	claims, err := tokens.Parse(token)
	if err != nil {
		return user.Actor{}, err
	}
	id, err := kernel.ParseUUID("sub", claims.Subject)
	if err != nil {
		return user.Actor{}, err
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Actor{}, err
	}
	return user.NewActor(id, role)
}

// actorFrom returns the caller stored by Authenticate.
func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorKey).(user.Actor)
	if !ok {
		return user.Actor{}, auth.ErrTokenIsInvalid
	}
	return actor, nil
}

// RequestContextLogger puts a logger carrying the request id, method and path
// into the request context. It must run after middleware.RequestID.
func RequestContextLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := logger.With(
				"requestId", c.Response().Header().Get(echo.HeaderXRequestID),
				"method", req.Method,
				"path", req.URL.Path,
			)
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))
			return next(c)
		}
	}
}

// AccessLog writes one line per finished request.
func AccessLog(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"requestId", v.RequestID,
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"duration", v.Latency,
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error.Error())
			}
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}

// ValidateRequests checks every request that matches a documented operation
// against the OpenAPI document. Security requirements are enforced by
// Authenticate, not here.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				// Undocumented routes (health, swagger) pass through.
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, validationError(err))
			}
			return next(c)
		}
	}, nil
}

func validationError(err error) Error {
	body := Error{Code: CodeValidationFailed, Message: err.Error()}

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			body.Field = reqErr.Parameter.Name
		}
		var schemaErr *openapi3.SchemaError
		if errors.As(reqErr.Err, &schemaErr) {
			if path := schemaErr.JSONPointer(); len(path) > 0 {
				body.Field = path[0]
			}
			body.Message = schemaErr.Reason
		} else if reqErr.Reason != "" {
			body.Message = reqErr.Reason
		}
	}
	return body
}
