package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"chaingate/api/types"
)

// New connects the optional stores. With no REDIS_URI the returned Database
// has a nil Redis client and balance caching stays off.
func New(cfg *types.Config) (*types.Database, error) {
	db := &types.Database{}
	if cfg.RedisURI == "" {
		return db, nil
	}

	if err := initRedis(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

func initRedis(db *types.Database, cfg *types.Config) error {
	var opts *redis.Options
	if strings.HasPrefix(cfg.RedisURI, "redis://") || strings.HasPrefix(cfg.RedisURI, "rediss://") {
		parsed, err := redis.ParseURL(cfg.RedisURI)
		if err != nil {
			return fmt.Errorf("parse REDIS_URI: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.RedisURI}
	}

	db.Redis = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Redis.Ping(ctx).Err(); err != nil {
		db.Redis.Close()
		db.Redis = nil
		return fmt.Errorf("connect redis: %w", err)
	}
	return nil
}

func Close(db *types.Database) error {
	if db == nil || db.Redis == nil {
		return nil
	}
	return db.Redis.Close()
}
