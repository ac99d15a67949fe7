package controller

import (
	"averin-be/internal/pkg/serverutils"
	"averin-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVaultController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
}

type vaultController struct {
	vaultService service.IVaultService
}

func NewVaultController(vaultService service.IVaultService) IVaultController {
	return &vaultController{
		vaultService: vaultService,
	}
}

func (c *vaultController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/vault/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("summary", c.Summary)
}

func (c *vaultController) Summary(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.vaultService.Summary(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get vault summary", res))
}
