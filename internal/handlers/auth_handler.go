package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindzy/internal/models"
	"mindzy/internal/services"
	"mindzy/internal/utils"
)

type AuthHandler struct {
	profiles services.ProfileService
	tokens   *utils.TokenIssuer
}

func NewAuthHandler(profiles services.ProfileService, tokens *utils.TokenIssuer) *AuthHandler {
	return &AuthHandler{profiles: profiles, tokens: tokens}
}

type loginResponse struct {
	Token     string    `json:"token"`
	DeviceID  string    `json:"device_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login godoc
// @Summary      Simulated login
// @Description  Any password is accepted; terms must be accepted. Creates a fresh device state.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := h.profiles.Login(c.Request.Context(), req.UserName, req.AcceptedTerms)
	if err != nil {
		respondErr(c, "[auth][login]", err)
		return
	}
	token, exp, err := h.tokens.Issue(dev)
	if err != nil {
		respondErr(c, "[auth][token]", err)
		return
	}
	log.Printf("[auth][login][ok] user=%q device=%s", req.UserName, dev)
	c.JSON(http.StatusOK, loginResponse{Token: token, DeviceID: dev, ExpiresAt: exp})
}
