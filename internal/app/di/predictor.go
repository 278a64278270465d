// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"aqariy_web/internal/platform/cache"
	"aqariy_web/internal/platform/externalapi/predictor"
	infrahttp "aqariy_web/internal/platform/http"
	"aqariy_web/internal/shared/ratelimiter"
)

// NewPredictor creates a throttled prediction API client.
// If rdb is non-nil, responses are cached in Redis for ttl.
func NewPredictor(cfg predictor.Config, rdb *redis.Client, ttl time.Duration) cache.Predictor {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)
	client := predictor.NewClient(cfg, httpClient, limiter)
	return cache.NewCachingPredictor(rdb, ttl, client, "predictor")
}
