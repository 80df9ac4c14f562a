package routes

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"chaingate/api/types"
)

func (h *Handler) QueryWallets(ctx *fiber.Ctx) error {
	var request types.WalletQuery
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	validWallets := make([]string, 0, len(request.Wallets))
	for _, wallet := range request.Wallets {
		wallet = strings.TrimSpace(wallet)
		if wallet != "" {
			validWallets = append(validWallets, wallet)
		}
	}

	if len(validWallets) == 0 {
		return badRequest(ctx, "No wallet addresses provided")
	}

	if h.Config.MaxWallets > 0 && len(validWallets) > h.Config.MaxWallets {
		return badRequest(ctx, fmt.Sprintf("Too many wallets (max %d)", h.Config.MaxWallets))
	}

	request.Wallets = validWallets
	request.TokenSymbol = strings.TrimSpace(request.TokenSymbol)

	return ctx.JSON(h.Wallets.QueryWallets(ctx.UserContext(), request))
}
