package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"chaingate/api/types"
)

func (h *Handler) TokenHolders(ctx *fiber.Ctx) error {
	var request types.TokenHolderQuery
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	token := strings.TrimSpace(request.TokenAddress)
	if token == "" {
		return badRequest(ctx, "Token address is required")
	}

	holders, err := h.Holders.Holders(ctx.UserContext(), token)
	if err != nil {
		return upstreamFailure(ctx, "Failed to fetch token holders")
	}

	return ctx.JSON(holders)
}
