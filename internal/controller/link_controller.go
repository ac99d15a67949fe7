package controller

import (
	"averin-be/internal/dto"
	"averin-be/internal/pkg/serverutils"
	"averin-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILinkController interface {
	RegisterRoutes(r fiber.Router)
	CreateBulk(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type linkController struct {
	linkService service.ILinkService
}

func NewLinkController(linkService service.ILinkService) ILinkController {
	return &linkController{
		linkService: linkService,
	}
}

func (c *linkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/link/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.CreateBulk)
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *linkController) CreateBulk(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateLinksRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.linkService.CreateBulk(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create links", res))
}

func (c *linkController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.linkService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete link", nil))
}

func (c *linkController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.linkService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list links", res))
}
