package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"consulting-backend/internal/domains/chat/model"
	"consulting-backend/internal/domains/chat/service"
	"consulting-backend/internal/domains/record"
	"consulting-backend/internal/shared/response"
)

type ChatHandler struct {
	svc *service.Service
}

func NewChatHandler(svc *service.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Chat answers a chat widget message
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reply, err := h.svc.Reply(c.Request.Context(), req)
	if err != nil {
		record.WriteError(c, "chat", err)
		return
	}

	// the widget reads reply at the top level
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reply":   reply.Reply,
		"topic":   reply.Topic,
		"source":  reply.Source,
	})
}
