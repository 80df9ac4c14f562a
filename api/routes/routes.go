package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chaingate/api/metrics"
	"chaingate/api/services"
	"chaingate/api/types"
)

// Handler carries the services behind every route.
type Handler struct {
	Config    *types.Config
	Wallets   *services.WalletService
	Contracts *services.ContractService
	Nfts      *services.NftService
	Holders   *services.HolderService
}

func InitRoutes(app *fiber.App, h *Handler, m *metrics.Metrics) {
	app.Post("/query-wallets", h.QueryWallets)
	app.Post("/contract-engagers", h.ContractEngagers)
	app.Post("/wallet-nfts", h.WalletNfts)
	app.Post("/token-holders", h.TokenHolders)

	app.Get("/openapi.json", OpenAPI)
	app.Get("/healthz", Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}

func Health(ctx *fiber.Ctx) error {
	return ctx.JSON(types.HealthResponse{Status: "ok"})
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: message})
}

func upstreamFailure(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{Error: message})
}
