package api

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"chaingate/api/database"
	"chaingate/api/metrics"
	"chaingate/api/middleware"
	"chaingate/api/routes"
	"chaingate/api/services"
	"chaingate/api/types"
)

// New wires services and routes into a fiber app. db may be nil.
func New(cfg *types.Config, db *types.Database, log *slog.Logger) *fiber.App {
	m := metrics.New()
	rpc := services.NewRPCClient(cfg, m)

	var cache services.BalanceCache
	if db != nil && db.Redis != nil {
		cache = services.NewRedisBalanceCache(db.Redis, cfg.CacheTTL, log)
	}

	prices := services.NewFixedPriceOracle(map[string]float64{
		services.NativeSymbol: cfg.EthUSDPrice,
	})

	nftProviders := []services.NftProvider{
		services.NewQuickNodeNftProvider(rpc, cfg.NftPageSize, cfg.NftMaxPages, log),
	}
	if cfg.NftFallbackEnabled() {
		nftProviders = append(nftProviders, services.NewRestNftProvider(
			cfg.NftFallbackURL,
			cfg.NftFallbackAPIKey,
			cfg.NftFallbackChain,
			cfg.NftPageSize,
			cfg.UpstreamTimeout,
			m,
		))
	}

	handler := &routes.Handler{
		Config:    cfg,
		Wallets:   services.NewWalletService(rpc, prices, cache, log),
		Contracts: services.NewContractService(rpc),
		Nfts:      services.NewNftService(nftProviders, cfg.NftResultLimit, log),
		Holders:   services.NewHolderService(rpc),
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.MetricsMiddleware(m))

	routes.InitRoutes(app, handler, m)

	return app
}

// Run serves the gateway until the listener fails.
func Run(cfg *types.Config) error {
	log := NewLogger(cfg.LogLevel)

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if db.Redis == nil {
		log.Info("balance cache disabled")
	}
	if !cfg.NftFallbackEnabled() {
		log.Info("secondary nft provider disabled")
	}

	app := New(cfg, db, log)

	log.Info("API is up and running", "port", cfg.Port)
	return app.Listen("0.0.0.0:" + cfg.Port)
}

func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
