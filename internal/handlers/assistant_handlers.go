package handlers

import (
	"net/http"

	"bizdel/internal/common"
	"bizdel/internal/services"

	"github.com/labstack/echo/v4"
)

// AssistantHandlers handles the AI chat endpoint
type AssistantHandlers struct {
	assistantSvc services.AssistantService
}

// NewAssistantHandlers creates a new assistant handlers instance
func NewAssistantHandlers(assistantSvc services.AssistantService) *AssistantHandlers {
	return &AssistantHandlers{assistantSvc: assistantSvc}
}

// ChatRequest represents the chat request payload
type ChatRequest struct {
	Message string `json:"message"`
}

// Chat returns a scripted response keyed off the message contents
func (h *AssistantHandlers) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Message == "" {
		return common.SendValidationError(c, map[string]string{"message": "message is required"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"response": h.assistantSvc.Respond(req.Message),
	})
}
