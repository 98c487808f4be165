package orders

import (
	"errors"
	"net/http"
	"strconv"
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

// RegisterRoutes attaches order routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/orders", h.list)
	rg.GET("/orders/:id", h.get)
	rg.POST("/orders", middleware.RequireAdmin(), h.create)
}

type createRequest struct {
	InternalModel      string   `json:"internalModel"`
	Quantity           int      `json:"quantity"`
	EstimatedYield     *float64 `json:"estimatedYield"`
	RequestedStartDate string   `json:"requestedStartDate"`
	DueDate            string   `json:"dueDate"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	start, err := time.Parse(DateFormat, req.RequestedStartDate)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "requestedStartDate must be YYYY-MM-DD", nil)
		return
	}
	var due *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(DateFormat, req.DueDate)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "dueDate must be YYYY-MM-DD", nil)
			return
		}
		due = &parsed
	}

	order, err := h.Svc.Create(c.Request.Context(), CreateInput{
		InternalModel:      req.InternalModel,
		Quantity:           req.Quantity,
		EstimatedYield:     req.EstimatedYield,
		RequestedStartDate: start,
		DueDate:            due,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create order", nil)
		}
		return
	}

	c.Set("orderId", order.ID)
	respond.Created(c, ToResponse(order))
}

func (h *Handler) get(c *gin.Context) {
	order, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "order not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch order", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, ToResponse(order))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list orders", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, order := range list {
		resp = append(resp, ToResponse(order))
	}
	respond.JSON(c, http.StatusOK, resp)
}

// ToResponse shapes an order for the API. The scheduling handler reuses it
// so both surfaces stay consistent.
func ToResponse(order Order) gin.H {
	resp := gin.H{
		"orderId":            order.ID,
		"quantity":           order.Quantity,
		"plannedInput":       order.PlannedInput(),
		"requestedStartDate": order.RequestedStartDate.Format(DateFormat),
		"status":             order.Status,
		"createdAt":          order.CreatedAt,
		"updatedAt":          order.UpdatedAt,
	}
	if order.InternalModel != "" {
		resp["internalModel"] = order.InternalModel
	}
	if order.EstimatedYield != nil {
		resp["estimatedYield"] = *order.EstimatedYield
	}
	if order.DueDate != nil {
		resp["dueDate"] = order.DueDate.Format(DateFormat)
	}
	if order.CompletionDate != nil {
		resp["completionDate"] = order.CompletionDate.Format(DateFormat)
		if order.DueDate != nil {
			resp["meetsDue"] = !order.CompletionDate.After(*order.DueDate)
		}
	}
	return resp
}
