package http

import (
	"errors"
	"net/http"

	"cargo/internal/pkg/auth"
	"cargo/internal/pkg/errs"
	"cargo/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeAlreadyExists          = "ALREADY_EXISTS"
	CodeInternal               = "INTERNAL"
)

// writeError renders err as an Error body. Storage and unexpected errors are
// logged and reported without details.
func writeError(c echo.Context, err error) error {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).ErrorContext(c.Request().Context(),
			"request failed", "error", err)
	}
	return c.JSON(status, body)
}

func errorResponse(err error) (int, Error) {
	var transition *errs.StatusTransitionIsInvalidError
	var exists *errs.ObjectAlreadyExistsError
	var notFound *errs.ObjectNotFoundError

	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, Error{
			Code:    CodeValidationFailed,
			Message: err.Error(),
			Field:   errs.ParamName(err),
		}
	case errors.As(err, &transition):
		return http.StatusConflict, Error{
			Code:      CodeInvalidTransition,
			Message:   err.Error(),
			Current:   transition.From,
			Requested: transition.To,
		}
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict, Error{
			Code:    CodeConcurrentModification,
			Message: "the object was changed by another request, reload and retry",
		}
	case errors.As(err, &exists):
		return http.StatusConflict, Error{
			Code:    CodeAlreadyExists,
			Message: errs.ErrObjectAlreadyExists.Error(),
			Field:   exists.ParamName,
		}
	case errors.As(err, &notFound):
		return http.StatusNotFound, Error{
			Code:    CodeNotFound,
			Message: errs.ErrObjectNotFound.Error(),
			Field:   notFound.ParamName,
		}
	case errors.Is(err, errs.ErrActionIsForbidden):
		return http.StatusForbidden, Error{Code: CodeForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrCredentialsAreInvalid), errors.Is(err, auth.ErrTokenIsInvalid):
		return http.StatusUnauthorized, Error{Code: CodeUnauthorized, Message: err.Error()}
	default:
		return http.StatusInternalServerError, Error{Code: CodeInternal, Message: "internal error"}
	}
}

// httpErrorHandler replaces echo's default so routing errors such as 404 and
// 405 share the Error body.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = writeError(c, err)
		return
	}

	code := CodeInternal
	switch he.Code {
	case http.StatusBadRequest:
		code = CodeValidationFailed
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		code = CodeNotFound
	}
	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok {
		message = m
	}
	_ = c.JSON(he.Code, Error{Code: code, Message: message})
}
