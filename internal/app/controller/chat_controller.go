package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Ask forwards a question to the AI design assistant
// POST /api/v1/chat/ask
func (ctrl *ChatController) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Message is required")
		return
	}

	reply := ctrl.chatService.Ask(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Concierge answers from the scripted studio knowledge base
// POST /api/v1/chat/concierge
func (ctrl *ChatController) Concierge(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Message is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": ctrl.chatService.Concierge(req.Message)})
}
