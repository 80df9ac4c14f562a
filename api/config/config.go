package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"chaingate/api/types"
)

var ErrMissingUpstream = errors.New("QUICKNODE_URL environment variable is required")

// LoadEnvFile merges a .env file into the process environment. Variables that
// are already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	return godotenv.Load(path)
}

func Load() (*types.Config, error) {
	upstreamURL := strings.TrimSpace(getEnv("QUICKNODE_URL", ""))
	if upstreamURL == "" {
		return nil, ErrMissingUpstream
	}

	cfg := &types.Config{
		Port:              getEnv("API_PORT", "8080"),
		UpstreamURL:       upstreamURL,
		RedisURI:          getEnv("REDIS_URI", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		NftFallbackAPIKey: strings.TrimSpace(getEnv("NFT_FALLBACK_API_KEY", "")),
		NftFallbackURL:    strings.TrimRight(getEnv("NFT_FALLBACK_URL", "https://deep-index.moralis.io/api/v2.2"), "/"),
		NftFallbackChain:  getEnv("NFT_FALLBACK_CHAIN", "eth"),
	}

	var err error
	if cfg.EthUSDPrice, err = getEnvFloat("ETH_USD_PRICE", 3000.0); err != nil {
		return nil, err
	}
	if cfg.UpstreamRPS, err = getEnvFloat("UPSTREAM_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.MaxWallets, err = getEnvInt("MAX_WALLETS", 0); err != nil {
		return nil, err
	}
	if cfg.NftPageSize, err = getEnvInt("NFT_PAGE_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.NftMaxPages, err = getEnvInt("NFT_MAX_PAGES", 5); err != nil {
		return nil, err
	}
	if cfg.NftResultLimit, err = getEnvInt("NFT_RESULT_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("CACHE_TTL", 10*time.Second); err != nil {
		return nil, err
	}

	if cfg.MaxWallets < 0 {
		return nil, fmt.Errorf("invalid MAX_WALLETS: must not be negative")
	}
	if cfg.NftPageSize <= 0 || cfg.NftMaxPages <= 0 || cfg.NftResultLimit <= 0 {
		return nil, fmt.Errorf("NFT_* limits must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
