// Package cache provides caching implementations for predictor interfaces.
package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	judgmententity "aqariy_web/internal/feature/judgment/domain/entity"
	judgmentusecase "aqariy_web/internal/feature/judgment/usecase"
	"aqariy_web/internal/feature/prediction/domain/entity"
	predictionusecase "aqariy_web/internal/feature/prediction/usecase"
)

// Predictor is the full prediction API surface decorated by CachingPredictor.
type Predictor interface {
	judgmentusecase.Predictor
	predictionusecase.Predictor
}

// CachingPredictor decorates a Predictor with Redis caching.
// The prediction model is deterministic for identical input, so responses
// are cached by a hash of the canonical request.
type CachingPredictor struct {
	inner     Predictor
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ Predictor = (*CachingPredictor)(nil)

// NewCachingPredictor decorates a Predictor with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "predictor".
func NewCachingPredictor(rdb *redis.Client, ttl time.Duration, inner Predictor, namespace string) *CachingPredictor {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if namespace == "" {
		namespace = "predictor"
	}
	return &CachingPredictor{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

type judgeKey struct {
	Attrs  entity.PropertyAttributes `json:"attrs"`
	Listed float64                   `json:"listed"`
}

// JudgePrice returns a cached judgment or asks the inner predictor.
func (c *CachingPredictor) JudgePrice(ctx context.Context, attrs entity.PropertyAttributes, listed float64) (judgmententity.JudgmentResult, error) {
	return cached(ctx, c, c.cacheKey("judge", judgeKey{Attrs: attrs, Listed: listed}), func() (judgmententity.JudgmentResult, error) {
		return c.inner.JudgePrice(ctx, attrs, listed)
	})
}

// Predict returns a cached prediction or asks the inner predictor.
func (c *CachingPredictor) Predict(ctx context.Context, attrs entity.PropertyAttributes) (entity.Prediction, error) {
	return cached(ctx, c, c.cacheKey("predict", attrs), func() (entity.Prediction, error) {
		return c.inner.Predict(ctx, attrs)
	})
}

// Metadata returns cached model metadata or asks the inner predictor.
func (c *CachingPredictor) Metadata(ctx context.Context) (entity.Metadata, error) {
	return cached(ctx, c, c.namespace+":metadata", func() (entity.Metadata, error) {
		return c.inner.Metadata(ctx)
	})
}

func cached[T any](ctx context.Context, c *CachingPredictor, key string, load func() (T, error)) (T, error) {
	// Bypass cache if Redis is not configured or the key could not be built
	if c.rdb == nil || key == "" {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the API
	out, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// cacheKey hashes the canonical JSON form of the request.
// encoding/json writes struct fields in declaration order, so equal requests give equal keys.
func (c *CachingPredictor) cacheKey(op string, req any) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(b)
	return fmt.Sprintf("%s:%s:%s", c.namespace, op, hex.EncodeToString(sum[:]))
}
