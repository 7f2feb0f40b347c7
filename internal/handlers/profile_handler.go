package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/services"
)

type ProfileHandler struct {
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GET /profile
// @Summary  Profile summary
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.Profile
// @Router   /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), deviceID(c))
	if err != nil {
		respondErr(c, "[profile][get]", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PUT /profile/name
// @Summary  Change display name
// @Tags     profile
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.Profile
// @Failure  400 {object} map[string]string
// @Router   /profile/name [put]
func (h *ProfileHandler) Rename(c *gin.Context) {
	var req struct {
		UserName string `json:"user_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.service.Rename(c.Request.Context(), deviceID(c), req.UserName)
	if err != nil {
		respondErr(c, "[profile][rename]", err)
		return
	}
	log.Printf("[profile][rename][ok] device=%s name=%q", deviceID(c), p.UserName)
	c.JSON(http.StatusOK, p)
}

// PUT /profile/telegram
// @Summary  Link a Telegram chat for overdue reminders
// @Tags     profile
// @Accept   json
// @Security BearerAuth
// @Success  204
// @Router   /profile/telegram [put]
func (h *ProfileHandler) LinkTelegram(c *gin.Context) {
	var req struct {
		ChatID int64 `json:"chat_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.LinkTelegram(c.Request.Context(), deviceID(c), req.ChatID); err != nil {
		respondErr(c, "[profile][telegram]", err)
		return
	}
	log.Printf("[profile][telegram][ok] device=%s chat_id=%d", deviceID(c), req.ChatID)
	c.Status(http.StatusNoContent)
}
