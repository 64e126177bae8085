package frontdesk

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

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings/:id/check-in", h.CheckIn)
	r.POST("/bookings/:id/check-out", h.CheckOut)
	r.POST("/bookings/:id/cancel", h.Cancel)
	r.POST("/bookings/:id/change-room", h.ChangeRoom)
}

type CheckInRequest struct {
	RoomID *int64 `json:"room_id"`
}

type CheckOutRequest struct {
	Force bool `json:"force"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ChangeRoomRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CheckInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	booking, err := h.service.CheckIn(c.Request.Context(), id, req.RoomID, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CheckOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	result, err := h.service.CheckOut(c.Request.Context(), id, req.Force, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.service.Cancel(c.Request.Context(), id, req.Reason, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) ChangeRoom(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req ChangeRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.service.ChangeRoom(c.Request.Context(), id, req.RoomID, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or room not found")
	case errors.Is(err, ErrConfirmationRequired):
		response.Error(c, http.StatusConflict, "CONFIRMATION_REQUIRED", err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrBookingNotConfirmed), errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrRoomNotAssigned):
		response.Error(c, http.StatusConflict, "ROOM_NOT_ASSIGNED", err.Error())
	case errors.Is(err, domain.ErrStaleState):
		response.Error(c, http.StatusConflict, "STALE_STATE", err.Error())
	case errors.Is(err, domain.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func actorID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
