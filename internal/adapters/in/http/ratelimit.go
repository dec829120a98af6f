package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"freight/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitPrefix = "amendments_rate"

// RateLimitConfig selects the request budget per caller. Rate uses the
// limiter format, e.g. "120-M". An empty RedisURL keeps counters in memory.
type RateLimitConfig struct {
	Rate     string
	RedisURL string
}

// NewRateLimiter builds a per-actor limiter. Callers without an actor on the
// request context are keyed by client IP. When redis is configured but
// unreachable the limiter falls back to the in-memory store.
func NewRateLimiter(ctx context.Context, cfg RateLimitConfig, logger *slog.Logger) (echo.MiddlewareFunc, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.Rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate limit %q: %w", cfg.Rate, err)
	}

	store := newLimiterStore(ctx, cfg.RedisURL, logger)
	instance := limiter.New(store, rate)

	mw := stdlib.NewMiddleware(instance,
		stdlib.WithKeyGetter(func(r *http.Request) string {
			if who, err := ActorFrom(r.Context()); err == nil {
				return who.ID().String()
			}
			return instance.GetIPKey(r)
		}),
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeJSONError(w, http.StatusTooManyRequests, servers.Error{
				Code:    servers.ErrorCodeRateLimited,
				Message: "too many requests",
			})
		}),
		stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "Rate limiter failed", "error", err)
			writeJSONError(w, http.StatusInternalServerError, servers.Error{
				Code:    servers.ErrorCodeInternal,
				Message: internalErrorMessage,
			})
		}),
	)
	return echo.WrapMiddleware(mw.Handler), nil
}

func newLimiterStore(ctx context.Context, redisURL string, logger *slog.Logger) limiter.Store {
	if redisURL == "" {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("Invalid redis URL for rate limiter, using memory store", "error", err)
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable for rate limiter, using memory store", "error", err)
		_ = client.Close()
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
	if err != nil {
		logger.Warn("Failed to create redis rate limit store, using memory store", "error", err)
		_ = client.Close()
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	logger.Info("Rate limiter using redis store", "addr", opt.Addr)
	return store
}

func writeJSONError(w http.ResponseWriter, status int, body servers.Error) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
