package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindzy/internal/models"
	"mindzy/internal/services"
)

type EventHandler struct {
	service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// GET /events
// @Summary  Event catalog in its current order
// @Tags     events
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.Event
// @Router   /events [get]
func (h *EventHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(deviceID(c)))
}

// POST /events/sort
// @Summary  Reorder the catalog (precio|fecha|importancia)
// @Tags     events
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.Event
// @Failure  400 {object} map[string]string
// @Router   /events/sort [post]
func (h *EventHandler) Sort(c *gin.Context) {
	var req struct {
		By string `json:"by" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	criterion, ok := models.ParseSortCriterion(req.By)
	if !ok {
		respondErr(c, "[event][sort]", fmt.Errorf("%w: unknown sort criterion %q", services.ErrInvalidInput, req.By))
		return
	}
	events, err := h.service.Sort(deviceID(c), criterion)
	if err != nil {
		respondErr(c, "[event][sort]", err)
		return
	}
	log.Printf("[event][sort][ok] device=%s by=%s", deviceID(c), criterion)
	c.JSON(http.StatusOK, events)
}

// GET /events/:id
// @Summary  Event detail
// @Tags     events
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "event id"
// @Success  200 {object} models.Event
// @Failure  404 {object} map[string]string
// @Router   /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	ev, err := h.service.Get(deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[event][get]", err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// POST /events/:id/checkout
// @Summary  Start a checkout
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "event id"
// @Success  201 {object} models.Checkout
// @Failure  404 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /events/{id}/checkout [post]
func (h *EventHandler) StartCheckout(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"omitempty,email"`
	}
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	co, err := h.service.StartCheckout(deviceID(c), c.Param("id"), req.Email)
	if err != nil {
		respondErr(c, "[checkout][start]", err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

// GET /checkouts/:id
// @Summary  Checkout status
// @Tags     checkout
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "checkout id"
// @Success  200 {object} models.Checkout
// @Failure  404 {object} map[string]string
// @Router   /checkouts/{id} [get]
func (h *EventHandler) GetCheckout(c *gin.Context) {
	co, err := h.service.GetCheckout(deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[checkout][get]", err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// POST /checkouts/:id/pay
// @Summary      Pay a checkout
// @Description  Moves to processing; confirmation follows after a short delay. Paying again is inert.
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "checkout id"
// @Success      202 {object} models.Checkout
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /checkouts/{id}/pay [post]
func (h *EventHandler) Pay(c *gin.Context) {
	co, err := h.service.Pay(deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[checkout][pay]", err)
		return
	}
	c.JSON(http.StatusAccepted, co)
}

// GET /checkouts/:id/ticket
// @Summary  Download the ticket PDF of a confirmed checkout
// @Tags     checkout
// @Produce  application/pdf
// @Security BearerAuth
// @Param    id path string true "checkout id"
// @Success  200 {file} file
// @Failure  404 {object} map[string]string
// @Router   /checkouts/{id}/ticket [get]
func (h *EventHandler) Ticket(c *gin.Context) {
	path, err := h.service.TicketPath(deviceID(c), c.Param("id"))
	if err != nil {
		respondErr(c, "[checkout][ticket]", err)
		return
	}
	c.FileAttachment(path, "ticket-"+c.Param("id")+".pdf")
}
