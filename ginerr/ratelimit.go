package ginerr

import (
	"fmt"

	"codeberg.org/algorave/errhandler/presets"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const storePrefix = "errhandler:ratelimit"

// NewLimiter builds a limiter from a formatted rate such as "100-M". The
// counters live in redis when client is non-nil, in memory otherwise.
func NewLimiter(formatted string, client *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	if client == nil {
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix}), rate), nil
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: storePrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}

	return limiter.New(store, rate), nil
}

// RateLimit limits requests per client IP. Rejections and store failures are
// recorded with c.Error, so Middleware must run before it.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return mgin.NewMiddleware(l,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.Error(presets.TooManyRequests.New("too many requests")) //nolint:errcheck,gosec // recorded for the error middleware
			c.Abort()
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			c.Error(err) //nolint:errcheck,gosec // recorded for the error middleware
			c.Abort()
		}),
	)
}
