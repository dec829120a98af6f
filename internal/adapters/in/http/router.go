package http

import (
	"context"
	"log/slog"
	"net/http"

	"freight/api"
	"freight/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig carries what the transport needs beyond the handlers.
type RouterConfig struct {
	JWTSecret []byte
	// RateLimit is nil when rate limiting is disabled.
	RateLimit *RateLimitConfig
}

// NewRouter assembles the echo instance: operational endpoints at the root
// and the amendment API under api.BasePath behind authentication, optional
// rate limiting and contract validation, in that order.
func NewRouter(ctx context.Context, server servers.ServerInterface, cfg RouterConfig, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET(api.BasePath+"/openapi.yml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.Spec)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(api.BasePath+"/openapi.yml")))

	validate, err := OpenAPIValidator(api.Spec, api.BasePath)
	if err != nil {
		return nil, err
	}
	apiMiddleware := []echo.MiddlewareFunc{JWTAuth(cfg.JWTSecret)}
	if cfg.RateLimit != nil {
		limit, limitErr := NewRateLimiter(ctx, *cfg.RateLimit, logger)
		if limitErr != nil {
			return nil, limitErr
		}
		apiMiddleware = append(apiMiddleware, limit)
	}
	apiMiddleware = append(apiMiddleware, validate)

	group := e.Group(api.BasePath, apiMiddleware...)
	servers.RegisterHandlers(group, server)

	return e, nil
}
