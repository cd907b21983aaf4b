package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/services"
)

// ChatbotHandler handles chatbot widget requests
type ChatbotHandler struct {
	chatbot *services.ChatbotService
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(chatbot *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

// Chat returns a canned response for the message. Storage failures
// degrade to a canned connection-failed reply instead of an error.
func (h *ChatbotHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Message string `json:"message"`
	}

	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	reply, err := h.chatbot.Reply(req.Message)
	if err != nil {
		return c.JSON(fiber.Map{
			"response": services.FallbackReply,
		})
	}

	return c.JSON(fiber.Map{
		"response": reply,
	})
}
