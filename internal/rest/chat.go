package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shopmate/domain"
	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

type ChatService interface {
	Chat(ctx context.Context, authorization, sessionID, message string) domain.ChatResult
	History(ctx context.Context, sessionID string) ([]domain.ChatTurn, error)
}

type ChatHandler struct {
	chatService ChatService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewChatHandler(chatService ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validator.New(),
		// Chat waits on the classifier plus one action self-call.
		timeout: 60 * time.Second,
	}
}

type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"session_id"`
}

// Chat serves POST /api/app/chat. Whatever happens downstream, a classified
// message gets a 200 with some reply text.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "Message is required", nil))
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "Message is required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	authorization := c.Request().Header.Get("Authorization")
	result := h.chatService.Chat(ctx, authorization, req.SessionID, req.Message)

	return c.JSON(http.StatusOK, response.Success(result.Message, result.Data))
}

// ChatHistory serves GET /api/app/chat/history?session_id=...
func (h *ChatHandler) ChatHistory(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", "session_id is required", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	turns, err := h.chatService.History(ctx, sessionID)
	if err != nil {
		logger.Error("Failed to read chat history", err)
		return c.JSON(http.StatusInternalServerError, response.Error("INTERNAL_ERROR", "Failed to retrieve chat history", nil))
	}

	return c.JSON(http.StatusOK, response.Success("Chat history retrieved successfully", map[string]interface{}{
		"session_id": sessionID,
		"turns":      turns,
	}))
}
