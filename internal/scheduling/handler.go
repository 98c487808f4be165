package scheduling

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/operations"
	"scheduler-backend/internal/orders"
	"scheduler-backend/internal/shared/server/middleware"
	"scheduler-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the scheduling engine.
type Handler struct {
	Engine *Engine
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches scheduling routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders/:id/schedule", middleware.RequireAdmin(), h.schedule)
	rg.GET("/orders/:id/schedule", h.getSchedule)
	rg.GET("/capacities/snapshot", h.snapshot)
}

func (h *Handler) schedule(c *gin.Context) {
	orderID := c.Param("id")
	result, err := h.Engine.ScheduleOrder(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "order not found", nil)
		case errors.Is(err, ErrInvalidOrder):
			respond.Error(c, http.StatusUnprocessableEntity, "invalid_order", err.Error(), nil)
		case errors.Is(err, ErrCapacityExceeded), errors.Is(err, capacities.ErrOverCommitted):
			respond.Error(c, http.StatusConflict, "capacity_conflict", "capacity state changed during the run, retry", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "scheduling run failed", nil)
		}
		return
	}

	c.Set("orderId", orderID)
	c.Set("scheduleStatus", result.Order.Status)
	respond.JSON(c, http.StatusOK, toScheduleResponse(result))
}

func (h *Handler) getSchedule(c *gin.Context) {
	result, err := h.Engine.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "order not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch schedule", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toScheduleResponse(result))
}

func (h *Handler) snapshot(c *gin.Context) {
	operationID := c.Query("operationId")
	if operationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "operationId is required", nil)
		return
	}
	from, err := parseDay(c.Query("from"), time.Now())
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD", nil)
		return
	}
	to, err := parseDay(c.Query("to"), from.AddDate(0, 0, 13))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "to must be YYYY-MM-DD", nil)
		return
	}

	days, err := h.Engine.CapacitySnapshot(c.Request.Context(), operationID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, operations.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "operation not found", nil)
		case errors.Is(err, capacities.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "to must not precede from", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build snapshot", nil)
		}
		return
	}

	resp := make([]gin.H, 0, len(days))
	for _, day := range days {
		resp = append(resp, gin.H{
			"date":       day.Date.Format(DateFormat),
			"dailyLimit": day.DailyLimit,
			"consumed":   day.Consumed,
			"available":  day.Available,
		})
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"operationId": operationID,
		"days":        resp,
	})
}

func parseDay(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return capacities.Day(fallback), nil
	}
	parsed, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, err
	}
	return capacities.Day(parsed), nil
}

func toScheduleResponse(result ScheduleResult) gin.H {
	entries := make([]gin.H, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, gin.H{
			"entryId":     e.ID,
			"operationId": e.OperationID,
			"date":        e.Date.Format(DateFormat),
			"quantity":    e.Quantity,
		})
	}
	resp := orders.ToResponse(result.Order)
	resp["entries"] = entries
	return resp
}
