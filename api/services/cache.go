package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/redis/go-redis/v9"
)

// BalanceCache stores native balances in wei keyed by address.
type BalanceCache interface {
	Get(ctx context.Context, address string) (*big.Int, bool)
	Set(ctx context.Context, address string, wei *big.Int)
}

type RedisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisBalanceCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisBalanceCache {
	return &RedisBalanceCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisBalanceCache) Get(ctx context.Context, address string) (*big.Int, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, balanceKey(address)).Result()
	if err != nil {
		return nil, false
	}

	wei, err := hexutil.DecodeBig(raw)
	if err != nil {
		return nil, false
	}

	return wei, true
}

func (c *RedisBalanceCache) Set(ctx context.Context, address string, wei *big.Int) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.client.Set(ctx, balanceKey(address), hexutil.EncodeBig(wei), c.ttl).Err(); err != nil {
		c.logger.Debug("balance cache write failed", "address", address, "error", err)
	}
}

func balanceKey(address string) string {
	return fmt.Sprintf("balance:%s", strings.ToLower(strings.TrimSpace(address)))
}
