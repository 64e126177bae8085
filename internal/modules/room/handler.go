package room

import (
	"context"
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
	rg.POST("/rooms", h.Create)
	rg.GET("/rooms", h.List)
	rg.GET("/rooms/:id", h.Get)
	rg.PATCH("/rooms/:id/mark-dirty", h.action((*Service).MarkDirty))
	rg.PATCH("/rooms/:id/mark-clean", h.action((*Service).MarkClean))
	rg.PATCH("/rooms/:id/mark-maintenance", h.action((*Service).MarkMaintenance))
	rg.PATCH("/rooms/:id/clear-maintenance", h.action((*Service).ClearMaintenance))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Room number, type and positive price are required")
		case errors.Is(err, ErrDuplicateRoomNumber):
			response.Error(c, http.StatusConflict, "DUPLICATE_ROOM", "Room number already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create room")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) List(c *gin.Context) {
	var (
		rooms []domain.Room
		err   error
	)
	if c.Query("status") == string(domain.RoomAvailable) {
		rooms, err = h.service.ListAvailable(c.Request.Context())
	} else {
		rooms, err = h.service.List(c.Request.Context())
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	room, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// action adapts the four housekeeping transitions onto one handler shape.
func (h *Handler) action(fn func(*Service, context.Context, int64, int64) (*domain.Room, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
			return
		}

		room, err := fn(h.service, c.Request.Context(), id, c.GetInt64("user_id"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			case errors.Is(err, domain.ErrInvalidTransition):
				response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Room state does not allow this action")
			case errors.Is(err, domain.ErrStaleState):
				response.Error(c, http.StatusConflict, "STALE_STATE", "Room changed concurrently, refresh and retry")
			default:
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update room")
			}
			return
		}

		response.Success(c, http.StatusOK, gin.H{"room": room})
	}
}
