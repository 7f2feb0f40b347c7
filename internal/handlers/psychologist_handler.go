package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/services"
)

// Psychologists godoc
// @Summary  Psychologist directory
// @Tags     psychologists
// @Produce  json
// @Param    q query string false "name substring"
// @Success  200 {array} models.Psychologist
// @Router   /psychologists [get]
func Psychologists(c *gin.Context) {
	c.JSON(http.StatusOK, services.SearchPsychologists(c.Query("q")))
}

// Healthz godoc
// @Summary  Liveness check
// @Tags     system
// @Success  200 {object} map[string]string
// @Router   /healthz [get]
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
