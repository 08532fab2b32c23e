package cache

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/ChemVault/internal/config"
	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Redis is a shared resolver cache for deployments running several engine
// instances against one inventory.  Failures degrade to cache misses; a
// broken cache must never break resolution.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger logging.Logger
}

// NewRedis constructs the redis-backed cache from config.
func NewRedis(cfg config.CacheConfig, logger logging.Logger) *Redis {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "chemvault:identity:"
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
		ttl:    ttl,
		prefix: prefix,
		logger: logger.Named("rediscache"),
	}
}

// Ping verifies connectivity, for startup checks.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get returns the cached record for key.
func (r *Redis) Get(ctx context.Context, key string) (chemistry.IdentityRecord, bool) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return chemistry.IdentityRecord{}, false
	}
	if err != nil {
		r.logger.Warn("cache get failed", logging.String("key", key), logging.Err(err))
		return chemistry.IdentityRecord{}, false
	}

	var record chemistry.IdentityRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		r.logger.Warn("cache entry corrupt", logging.String("key", key), logging.Err(err))
		return chemistry.IdentityRecord{}, false
	}
	return record, true
}

// Set stores record under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, record chemistry.IdentityRecord) {
	raw, err := json.Marshal(record)
	if err != nil {
		r.logger.Warn("cache marshal failed", logging.String("key", key), logging.Err(err))
		return
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		r.logger.Warn("cache set failed", logging.String("key", key), logging.Err(err))
	}
}
