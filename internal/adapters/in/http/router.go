// Package http exposes the order tracking API over echo. Requests are checked
// against the embedded OpenAPI document, authenticated with Bearer session
// tokens and translated into application commands and queries.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"cargo/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// NewRouter builds the echo instance with health, docs and API routes.
func NewRouter(server ServerInterface, tokens TokenParser, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}
	if err := registerDocs(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestContextLogger(logger))
	e.Use(AccessLog(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server, Authenticate(tokens), validate)
	return e, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// registerDocs publishes the document to swag once per process; swag panics
// on a second registration under the same name.
func registerDocs(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("render openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(raw)})
	})
	return nil
}
