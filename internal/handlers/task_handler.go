package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindzy/internal/models"
	"mindzy/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title    string              `json:"title" binding:"required"`
	DueDate  string              `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Priority models.TaskPriority `json:"priority"`                   // high|medium|low
	Reward   int                 `json:"reward"`                     // 100|50|20
}

// resolveReward prefers an explicit reward over a priority tier. Either way
// the result is one of the tier values.
func (r createTaskRequest) resolveReward() (int, error) {
	if r.Reward != 0 {
		if !models.IsTierReward(r.Reward) {
			return 0, fmt.Errorf("%w: reward must be %d, %d or %d",
				services.ErrInvalidInput, models.RewardHigh, models.RewardMedium, models.RewardLow)
		}
		return r.Reward, nil
	}
	if r.Priority == "" {
		return 0, fmt.Errorf("%w: priority or reward is required", services.ErrInvalidInput)
	}
	reward, ok := models.RewardFor(r.Priority)
	if !ok {
		return 0, fmt.Errorf("%w: priority must be high|medium|low", services.ErrInvalidInput)
	}
	return reward, nil
}

// POST /tasks
// @Summary  Add a task
// @Tags     tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} models.TaskView
// @Failure  400 {object} map[string]string
// @Router   /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reward, err := req.resolveReward()
	if err != nil {
		respondErr(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create] device=%s title=%q reward=%d due=%q", deviceID(c), req.Title, reward, req.DueDate)

	task, err := h.service.Create(c.Request.Context(), deviceID(c), req.Title, reward, req.DueDate)
	if err != nil {
		respondErr(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create][ok] id=%s", task.ID)
	c.JSON(http.StatusCreated, task)
}

// GET /tasks?priority=&date=YYYY-MM-DD&month=YYYY-MM
// @Summary  Pending tasks ordered by due date
// @Tags     tasks
// @Produce  json
// @Security BearerAuth
// @Param    priority query string false "all|high|medium|low"
// @Param    date     query string false "YYYY-MM-DD"
// @Param    month    query string false "YYYY-MM"
// @Success  200 {array} models.TaskView
// @Router   /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	filter := models.TaskFilter{Priority: models.TaskPriority(c.Query("priority"))}
	if v, ok := c.GetQuery("date"); ok {
		if _, err := time.Parse(models.DateLayout, v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date (YYYY-MM-DD)"})
			return
		}
		filter.Date = &v
	} else if v, ok := c.GetQuery("month"); ok {
		m, err := time.Parse("2006-01", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month (YYYY-MM)"})
			return
		}
		filter.Month = &m
	}

	tasks, err := h.service.List(c.Request.Context(), deviceID(c), filter)
	if err != nil {
		respondErr(c, "[task][list]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/completed
// @Summary  Completed tasks
// @Tags     tasks
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.TaskView
// @Router   /tasks/completed [get]
func (h *TaskHandler) Completed(c *gin.Context) {
	tasks, err := h.service.Completed(c.Request.Context(), deviceID(c))
	if err != nil {
		respondErr(c, "[task][completed]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/overdue
// @Summary  Overdue pending tasks
// @Tags     tasks
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} models.TaskView
// @Router   /tasks/overdue [get]
func (h *TaskHandler) Overdue(c *gin.Context) {
	tasks, err := h.service.Overdue(c.Request.Context(), deviceID(c))
	if err != nil {
		respondErr(c, "[task][overdue]", err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// POST /tasks/:id/complete
// @Summary  Complete a task and credit its reward once
// @Tags     tasks
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "task id"
// @Success  200 {object} services.CompleteResult
// @Router   /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	res, err := h.service.Complete(c.Request.Context(), deviceID(c), id)
	if err != nil {
		respondErr(c, "[task][complete]", err)
		return
	}
	log.Printf("[task][complete] device=%s id=%s found=%t credited=%t coins=%d",
		deviceID(c), id, res.Found, res.Credited, res.Coins)
	c.JSON(http.StatusOK, res)
}

// DELETE /tasks/:id
// @Summary  Delete a task (no refund of credited coins)
// @Tags     tasks
// @Security BearerAuth
// @Param    id path string true "task id"
// @Success  204
// @Router   /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), deviceID(c), c.Param("id")); err != nil {
		respondErr(c, "[task][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
