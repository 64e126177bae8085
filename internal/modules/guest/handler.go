package guest

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
	r.POST("/guests", h.Create)
	r.GET("/guests", h.Search)
	r.GET("/guests/:id", h.Get)
	r.PATCH("/guests/:id", h.Update)
	r.GET("/guests/:id/history", h.History)
	r.PATCH("/guests/:id/blacklist", h.Blacklist)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	guest, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, guest)
}

func (h *Handler) Search(c *gin.Context) {
	guests, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guests)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	guest, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guest)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	var req UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	guest, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guest)
}

func (h *Handler) History(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	history, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, history)
}

func (h *Handler) Blacklist(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	var req BlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Blacklisted == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "blacklisted flag is required")
		return
	}
	guest, err := h.service.SetBlacklisted(c.Request.Context(), id, *req.Blacklisted, actorID(c))
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guest)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Guest not found")
	case errors.Is(err, domain.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func guestID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid guest id")
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
