package types

import (
	"github.com/redis/go-redis/v9"
)

// Database holds the optional backing stores. Redis is nil when caching is off.
type Database struct {
	Redis *redis.Client
}
