// internal/interfaces/http/middleware/rate_limit.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/your-org/pos-terminal/internal/config"
)

// RateLimit limits each client IP to the configured requests per minute,
// counted in Redis so the limit holds across instances. Falls back to an
// in-memory store when the Redis store cannot be created.
func RateLimit(cfg *config.Config, redisClient *redis.Client) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Minute,
		Limit:  int64(cfg.Security.RateLimitPerMinute),
	}

	store, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix: "rate_limit",
	})
	if err != nil {
		store = memory.NewStore()
	}

	return mgin.NewMiddleware(limiter.New(store, rate))
}
