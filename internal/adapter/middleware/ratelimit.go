package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimit limits requests per client IP using a formatted rate such as
// "20-M". Counters live in Redis when a client is given so every instance
// shares them, otherwise in process memory.
func RateLimit(rateStr, routeID string, client *redis.Client, log logrus.FieldLogger) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q for route %s: %w", rateStr, routeID, err)
	}

	prefix := fmt.Sprintf("rate_limiter:%s", routeID)

	var store limiter.Store
	if client != nil {
		store, err = redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
			Prefix:   prefix,
			MaxRetry: 3,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: rate.Period,
		})
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate),
		ginmiddleware.WithLimitReachedHandler(func(c *gin.Context) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
		}),
		ginmiddleware.WithErrorHandler(func(c *gin.Context, err error) {
			log.WithError(err).WithField("route", routeID).Warn("rate limiter unavailable")
			c.Next()
		}),
	), nil
}
