package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/models"
	"mindzy/internal/services"
)

type RewardHandler struct {
	service services.RewardService
}

func NewRewardHandler(service services.RewardService) *RewardHandler {
	return &RewardHandler{service: service}
}

type rewardListResponse struct {
	Coins   int             `json:"coins"`
	Rewards []models.Reward `json:"rewards"`
}

// GET /rewards
// @Summary  Reward catalog and balance
// @Tags     rewards
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} rewardListResponse
// @Router   /rewards [get]
func (h *RewardHandler) List(c *gin.Context) {
	rewards, coins, err := h.service.List(c.Request.Context(), deviceID(c))
	if err != nil {
		respondErr(c, "[reward][list]", err)
		return
	}
	c.JSON(http.StatusOK, rewardListResponse{Coins: coins, Rewards: rewards})
}

// POST /rewards
// @Summary  Add a custom reward
// @Tags     rewards
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} models.Reward
// @Failure  400 {object} map[string]string
// @Router   /rewards [post]
func (h *RewardHandler) Create(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Cost  int    `json:"cost" binding:"required"`
		Icon  string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[reward][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.service.Create(c.Request.Context(), deviceID(c), req.Title, req.Cost, req.Icon)
	if err != nil {
		respondErr(c, "[reward][create]", err)
		return
	}
	log.Printf("[reward][create][ok] device=%s id=%s cost=%d", deviceID(c), r.ID, r.Cost)
	c.JSON(http.StatusCreated, r)
}

// GET /rewards/:id/quote
// @Summary  Preview a redemption without spending
// @Tags     rewards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "reward id"
// @Success  200 {object} models.RedeemQuote
// @Failure  404 {object} map[string]string
// @Router   /rewards/{id}/quote [get]
func (h *RewardHandler) Quote(c *gin.Context) {
	q, err := h.service.Quote(c.Request.Context(), deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[reward][quote]", err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// POST /rewards/:id/redeem
// @Summary  Redeem a reward
// @Tags     rewards
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "reward id"
// @Success  200 {object} models.RedeemResult
// @Failure  402 {object} map[string]string
// @Failure  404 {object} map[string]string
// @Router   /rewards/{id}/redeem [post]
func (h *RewardHandler) Redeem(c *gin.Context) {
	res, err := h.service.Redeem(c.Request.Context(), deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[reward][redeem]", err)
		return
	}
	log.Printf("[reward][redeem][ok] device=%s title=%q spent=%d remaining=%d",
		deviceID(c), res.Title, res.Spent, res.Remaining)
	c.JSON(http.StatusOK, res)
}

// DELETE /rewards/:id
// @Summary  Delete a reward
// @Tags     rewards
// @Security BearerAuth
// @Param    id path string true "reward id"
// @Success  204
// @Router   /rewards/{id} [delete]
func (h *RewardHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), deviceID(c), c.Param("id")); err != nil {
		respondErr(c, "[reward][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
