package types

import "time"

type Config struct {
	Port        string
	UpstreamURL string
	RedisURI    string
	LogLevel    string

	NftFallbackAPIKey string
	NftFallbackURL    string
	NftFallbackChain  string

	EthUSDPrice    float64
	MaxWallets     int // 0 means uncapped
	NftPageSize    int
	NftMaxPages    int
	NftResultLimit int

	UpstreamTimeout time.Duration
	UpstreamRPS     float64
	CacheTTL        time.Duration
}

// NftFallbackEnabled reports whether the secondary NFT provider is configured.
func (c *Config) NftFallbackEnabled() bool {
	return c.NftFallbackAPIKey != ""
}
