package booking

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
	r.POST("/bookings", h.Create)
	r.GET("/bookings", h.List)
	r.GET("/bookings/:id", h.Get)
	r.PATCH("/bookings/:id/dates", h.MoveDates)
	r.PATCH("/bookings/:id/room", h.AssignRoom)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, booking)
}

func (h *Handler) List(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))
	bookings, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	booking, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) MoveDates(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req MoveDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.service.MoveDates(c.Request.Context(), id, req.CheckInDate, req.CheckOutDate, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) AssignRoom(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	booking, err := h.service.AssignRoom(c.Request.Context(), id, req.RoomID, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, booking)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking, guest or room not found")
	case errors.Is(err, domain.ErrValidation), errors.Is(err, ErrGuestRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrGuestBlacklist):
		response.Error(c, http.StatusConflict, "GUEST_BLACKLISTED", err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		response.Error(c, http.StatusConflict, "ROOM_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrBookingFinished), errors.Is(err, domain.ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, domain.ErrStaleState):
		response.Error(c, http.StatusConflict, "STALE_STATE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func actorID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
