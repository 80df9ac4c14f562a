package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"chaingate/api/types"
)

const noNftsMessage = "No NFTs found for this wallet."

func (h *Handler) WalletNfts(ctx *fiber.Ctx) error {
	var request types.NftQuery
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	wallet := strings.TrimSpace(request.WalletAddress)
	if wallet == "" {
		return badRequest(ctx, "Wallet address is required")
	}

	nfts, err := h.Nfts.WalletNfts(ctx.UserContext(), wallet)
	if err != nil {
		return upstreamFailure(ctx, "Failed to fetch wallet NFTs")
	}

	if len(nfts) == 0 {
		return ctx.JSON(types.MessageResponse{Message: noNftsMessage})
	}

	return ctx.JSON(nfts)
}
