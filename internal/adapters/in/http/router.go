package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance with middleware, the API routes and the
// API contract endpoints.
func NewRouter(ctx context.Context, server *Server, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	docJSON, err := registerSwagger(doc)
	if err != nil {
		return nil, err
	}

	logger = logger.With("component", "http")
	metrics := NewMetrics()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", server.Health)
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api/v1")
	api.GET("/orders", server.ListOrders)
	api.POST("/orders", server.RegisterOrder)
	api.GET("/orders/summary", server.GetOrderSummary)
	api.GET("/orders/:orderId", server.GetOrder)
	api.POST("/orders/:orderId/allocation", server.AllocateOrder)
	api.GET("/orders/:orderId/picking-list", server.GetPickingList)
	api.POST("/orders/:orderId/picking/complete", server.CompletePicking)
	api.POST("/orders/:orderId/shipment", server.ShipOrder)
	api.POST("/lots", server.ReceiveLot)
	api.GET("/stock", server.GetAvailableStock)

	return e, nil
}
