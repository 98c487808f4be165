package capacities

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/shared/server/middleware"
	"scheduler-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches capacity routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/capacities", h.list)
	rg.GET("/capacities/:id", h.get)

	admin := rg.Group("", middleware.RequireAdmin())
	admin.POST("/capacities", h.create)
	admin.PUT("/capacities/:id", h.update)
	admin.DELETE("/capacities/:id", h.remove)
}

type createRequest struct {
	OperationID string `json:"operationId"`
	Date        string `json:"date"`
	DailyLimit  int    `json:"dailyLimit"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	date, err := time.Parse(DateFormat, req.Date)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
		return
	}

	cap, err := h.Svc.Create(c.Request.Context(), req.OperationID, date, req.DailyLimit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "capacity already defined for this operation and date", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create capacity", nil)
		}
		return
	}

	c.Set("operationId", cap.OperationID)
	respond.Created(c, toResponse(cap))
}

func (h *Handler) get(c *gin.Context) {
	cap, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "capacity not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch capacity", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(cap))
}

func (h *Handler) list(c *gin.Context) {
	from := Day(time.Now().UTC())
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(DateFormat, v)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD", nil)
			return
		}
		from = parsed
	}

	rows, err := h.Svc.List(c.Request.Context(), from)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list capacities", nil)
		return
	}
	resp := make([]gin.H, 0, len(rows))
	for _, cap := range rows {
		resp = append(resp, toResponse(cap))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type updateRequest struct {
	DailyLimit int `json:"dailyLimit"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	cap, err := h.Svc.UpdateLimit(c.Request.Context(), c.Param("id"), req.DailyLimit)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "capacity not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrLimitBelowConsumed):
			respond.Error(c, http.StatusConflict, "limit_below_consumed", "daily limit is below the already reserved amount", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update capacity", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(cap))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "capacity not found", nil)
		case errors.Is(err, ErrLimitBelowConsumed):
			respond.Error(c, http.StatusConflict, "capacity_reserved", "capacity has reservations against it", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete capacity", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "capacity deleted"})
}

func toResponse(cap Capacity) gin.H {
	return gin.H{
		"capacityId":  cap.ID,
		"operationId": cap.OperationID,
		"date":        cap.Date.Format(DateFormat),
		"dailyLimit":  cap.DailyLimit,
		"consumed":    cap.Consumed,
		"available":   cap.Available(),
	}
}
