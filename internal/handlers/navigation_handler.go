package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/models"
	"mindzy/internal/services"
)

type NavigationHandler struct {
	service *services.NavigationService
}

func NewNavigationHandler(service *services.NavigationService) *NavigationHandler {
	return &NavigationHandler{service: service}
}

// GET /navigation
// @Summary  Current screen
// @Tags     navigation
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.NavigationState
// @Router   /navigation [get]
func (h *NavigationHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Current(deviceID(c)))
}

// POST /navigation
// @Summary  Go to a screen
// @Tags     navigation
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.NavigationState
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /navigation [post]
func (h *NavigationHandler) Navigate(c *gin.Context) {
	var req struct {
		Screen models.Screen `json:"screen" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.service.Navigate(deviceID(c), req.Screen)
	if err != nil {
		respondErr(c, "[nav][go]", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /navigation/select
// @Summary  Select an event and open its detail screen
// @Tags     navigation
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.NavigationState
// @Failure  404 {object} map[string]string
// @Router   /navigation/select [post]
func (h *NavigationHandler) SelectEvent(c *gin.Context) {
	var req struct {
		EventID string `json:"event_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := h.service.SelectEvent(deviceID(c), req.EventID)
	if err != nil {
		respondErr(c, "[nav][select]", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// POST /navigation/back
// @Summary  Follow the back wiring of the current screen
// @Tags     navigation
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.NavigationState
// @Router   /navigation/back [post]
func (h *NavigationHandler) Back(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Back(deviceID(c)))
}
