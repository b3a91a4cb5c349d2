package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// LoggerOpt tweaks the request logger configuration.
type LoggerOpt func(*middleware.RequestLoggerConfig)

// RequestLogger logs one entry per request through logger.
func RequestLogger(logger interfaces.Logger, opts ...LoggerOpt) echo.MiddlewareFunc {
	if logger == nil {
		logger = logging.NoOp()
	}
	cfg := middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogLatency:  true,
		LogURI:      true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithContext(c.Request().Context())
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			}
			if v.Error != nil {
				entry.Warn("http.request.error", append(args, "error", v.Error)...)
				return nil
			}
			entry.Info("http.request", args...)
			return nil
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return middleware.RequestLoggerWithConfig(cfg)
}

// RequestID assigns an X-Request-Id to every request that lacks one.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestFields stores the request id on the request context so loggers bound
// with WithContext tag their entries with it.
func RequestFields() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			if id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logging.ContextWithFields(req.Context(), map[string]any{
					"request_id": id,
				})))
			}
			return next(c)
		}
	}
}
