package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"blogly/internal/middleware"
	"blogly/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: it decodes key into dest on a hit, otherwise
// runs load (which must populate dest) and stores the JSON result for ttl.
// Redis failures fall through to load; errors from load are returned as-is and never cached.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			observability.RecordCacheLookup(key, true)
			return nil
		}
		middleware.Logger.WarnContext(ctx, "Discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		middleware.Logger.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	observability.RecordCacheLookup(key, false)

	if err := load(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "Cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return nil
}
