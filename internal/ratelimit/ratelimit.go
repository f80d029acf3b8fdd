// Package ratelimit builds the per-client request limits applied to the
// hot public endpoints. Counters live in redis so limits hold across
// replicas.
package ratelimit

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Middleware returns a gin middleware enforcing the given limit, e.g.
// "10-M" for ten requests per minute per client IP. Counters are scoped
// by name so limiters on different endpoint groups never share a budget.
func Middleware(client *redis.Client, name, format string) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate %q: %w", format, err)
	}

	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: storePrefix(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	return mgin.NewMiddleware(limiter.New(store, rate)), nil
}

// redis key prefix for one named limiter. The store appends the client
// IP, so two limiters with the same name would share counters.
func storePrefix(name string) string {
	return "ratelimit:" + name
}
