package emotion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores classification results by key
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result, ttl time.Duration) error
}

// RedisCache keeps results in Redis as JSON
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a cache from a redis:// URL
func NewRedisCache(url, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "emotion:"
	}
	return &RedisCache{client: redis.NewClient(opts), prefix: prefix}, nil
}

// Ping checks the connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get implements Cache
func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, err
	}
	return &result, true, nil
}

// Set implements Cache
func (c *RedisCache) Set(ctx context.Context, key string, result *Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// CachedClassifier serves repeated texts from a cache.
// Cache failures are logged and never fail a classification.
type CachedClassifier struct {
	next   Classifier
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClassifier wraps next with cache
func NewCachedClassifier(next Classifier, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClassifier{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Info implements Classifier
func (c *CachedClassifier) Info() ModelInfo {
	return c.next.Info()
}

// Classify implements Classifier
func (c *CachedClassifier) Classify(ctx context.Context, text string) (*Result, error) {
	key := CacheKey(c.next.Info().Model, text)

	cached, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("emotion cache read failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	result, err := c.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, result, c.ttl); err != nil {
		c.logger.Warn("emotion cache write failed", zap.Error(err))
	}
	return result, nil
}

// CacheKey derives the cache key for a model and text
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
