package folio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	r.GET("/bookings/:id/folio", h.Folio)
	r.POST("/bookings/:id/charges", h.AddCharge)
	r.POST("/bookings/:id/payments", h.AddPayment)
	r.POST("/bookings/:id/payments/:payment_id/void", h.VoidPayment)
}

func (h *Handler) Folio(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	view, err := h.service.Folio(c.Request.Context(), bookingID)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) AddCharge(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	charge, err := h.service.AddCharge(c.Request.Context(), bookingID, req.Description, req.Amount, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, charge)
}

func (h *Handler) AddPayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	payment, err := h.service.AddPayment(c.Request.Context(), bookingID, req.Amount, req.Method, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

func (h *Handler) VoidPayment(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}
	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment id")
		return
	}

	var req VoidPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	payment, err := h.service.VoidPayment(c.Request.Context(), bookingID, paymentID, actorID(c), actorRole(c), req.Reason)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or payment not found")
	case errors.Is(err, domain.ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to void payments")
	case errors.Is(err, ErrFolioClosed):
		response.Error(c, http.StatusConflict, "FOLIO_CLOSED", "The folio is closed for this booking")
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrReasonMissing), errors.Is(err, domain.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
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

func actorRole(c *gin.Context) domain.Role {
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(string); ok {
			return domain.Role(r)
		}
	}
	return ""
}
