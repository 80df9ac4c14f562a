package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"chaingate/api/types"
)

func (h *Handler) ContractEngagers(ctx *fiber.Ctx) error {
	var request types.ContractQuery
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	contract := strings.TrimSpace(request.ContractAddress)
	if contract == "" {
		return badRequest(ctx, "Contract address is required")
	}

	engagers, err := h.Contracts.Engagers(ctx.UserContext(), contract)
	if err != nil {
		return upstreamFailure(ctx, "Failed to fetch contract transactions")
	}

	return ctx.JSON(engagers)
}
