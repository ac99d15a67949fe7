package controller

import (
	"averin-be/internal/dto"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/pkg/serverutils"
	"averin-be/internal/service"
	"averin-be/pkg/rag/response"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

// chatController exposes the answer endpoint. Unlike the vault CRUD
// routes it speaks a flat JSON contract expected by the frontend, so no
// response envelope is applied here.
type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}
	if req.Question == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}

	result, err := c.chatService.Ask(ctx.Context(), userId, &req)
	if err != nil {
		c.logger.Error("CHAT", "Failed to process question", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   response.GenericFailure,
			"details": err.Error(),
		})
	}

	if result.LimitReached {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":        response.LimitReached,
			"limitReached": true,
		})
	}

	if result.RetryAfter > 0 {
		return ctx.JSON(fiber.Map{
			"answer":     result.Answer,
			"retryAfter": result.RetryAfter,
		})
	}

	body := fiber.Map{
		"answer":  result.Answer,
		"sources": result.Sources,
	}
	if result.SearchMetadata != nil {
		body["searchMetadata"] = result.SearchMetadata
	}
	return ctx.JSON(body)
}
