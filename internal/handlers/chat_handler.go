package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/services"
)

type ChatHandler struct {
	chat     *services.ChatService
	profiles services.ProfileService
}

func NewChatHandler(chat *services.ChatService, profiles services.ProfileService) *ChatHandler {
	return &ChatHandler{chat: chat, profiles: profiles}
}

// POST /chat/sessions
// @Summary  Open a chat session
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} models.ChatSessionView
// @Router   /chat/sessions [post]
func (h *ChatHandler) Start(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), deviceID(c))
	if err != nil {
		respondErr(c, "[chat][start]", err)
		return
	}
	c.JSON(http.StatusCreated, h.chat.StartSession(deviceID(c), p.UserName))
}

// GET /chat/sessions/:id
// @Summary  Chat session snapshot
// @Tags     chat
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "session id"
// @Success  200 {object} models.ChatSessionView
// @Failure  404 {object} map[string]string
// @Router   /chat/sessions/{id} [get]
func (h *ChatHandler) Get(c *gin.Context) {
	s, err := h.chat.Get(deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[chat][get]", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// POST /chat/sessions/:id/messages
// @Summary      Send a message
// @Description  Every accepted message uses one unit of the session quota, even when the assistant is unreachable.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "session id"
// @Success      200 {object} models.SendResult
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Failure      429 {object} map[string]string
// @Router       /chat/sessions/{id}/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.chat.SendMessage(c.Request.Context(), deviceID(c), c.Param("id"), req.Text)
	if err != nil {
		respondErr(c, "[chat][send]", err)
		return
	}
	c.JSON(http.StatusOK, res)
}
