package housekeeping

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atithi/internal/domain"
	"atithi/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/housekeeping/tasks", h.ListPending)
	rg.POST("/housekeeping/tasks/:id/complete", h.CompleteTask)
}

func (h *Handler) ListPending(c *gin.Context) {
	tasks, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load tasks")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) CompleteTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid task ID")
		return
	}

	task, err := h.service.CompleteTask(c.Request.Context(), taskID, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Task not found")
		case errors.Is(err, domain.ErrStaleState):
			response.Error(c, http.StatusConflict, "STALE_STATE", "Task already completed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to complete task")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}
