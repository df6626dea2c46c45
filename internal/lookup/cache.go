package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cinetix/ticketing/internal/domain"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

// CachedMovieLookup is a read-through Redis cache in front of the movie
// service. Only successful lookups are cached; misses and upstream failures
// always go to the collaborator.
type CachedMovieLookup struct {
	next   domain.MovieLookup
	redis  redis.UniversalClient
	logger *slog.Logger
}

func NewCachedMovieLookup(next domain.MovieLookup, rdb redis.UniversalClient, logger *slog.Logger) *CachedMovieLookup {
	return &CachedMovieLookup{next: next, redis: rdb, logger: logger}
}

func (c *CachedMovieLookup) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	key := fmt.Sprintf("lookup:movie:%d", id)

	var movie domain.Movie
	if cacheGet(ctx, c.redis, c.logger, key, &movie) {
		return &movie, nil
	}

	fresh, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, c.redis, c.logger, key, fresh)

	return fresh, nil
}

// CachedTheaterLookup is a read-through Redis cache in front of the theater
// service, keyed by id and by name.
type CachedTheaterLookup struct {
	next   domain.TheaterLookup
	redis  redis.UniversalClient
	logger *slog.Logger
}

func NewCachedTheaterLookup(next domain.TheaterLookup, rdb redis.UniversalClient, logger *slog.Logger) *CachedTheaterLookup {
	return &CachedTheaterLookup{next: next, redis: rdb, logger: logger}
}

func (c *CachedTheaterLookup) GetByID(ctx context.Context, id int64) (*domain.Theater, error) {
	key := fmt.Sprintf("lookup:theater:%d", id)

	var theater domain.Theater
	if cacheGet(ctx, c.redis, c.logger, key, &theater) {
		return &theater, nil
	}

	fresh, err := c.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, c.redis, c.logger, key, fresh)

	return fresh, nil
}

func (c *CachedTheaterLookup) GetByName(ctx context.Context, name string) (*domain.Theater, error) {
	key := "lookup:theater:name:" + name

	var theater domain.Theater
	if cacheGet(ctx, c.redis, c.logger, key, &theater) {
		return &theater, nil
	}

	fresh, err := c.next.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	cacheSet(ctx, c.redis, c.logger, key, fresh)
	cacheSet(ctx, c.redis, c.logger, fmt.Sprintf("lookup:theater:%d", fresh.ID), fresh)

	return fresh, nil
}

// cacheGet reports whether the key was found and decoded. Cache errors are
// logged and treated as misses so Redis never takes down a lookup.
func cacheGet(ctx context.Context, rdb redis.UniversalClient, logger *slog.Logger, key string, dst any) bool {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("lookup cache read failed", "key", key, "error", err)
		}
		return false
	}

	err = json.Unmarshal(data, dst)
	if err != nil {
		logger.Warn("lookup cache entry corrupt", "key", key, "error", err)
		return false
	}

	return true
}

func cacheSet(ctx context.Context, rdb redis.UniversalClient, logger *slog.Logger, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("lookup cache encode failed", "key", key, "error", err)
		return
	}

	err = rdb.Set(ctx, key, data, cacheTTL).Err()
	if err != nil {
		logger.Warn("lookup cache write failed", "key", key, "error", err)
	}
}
