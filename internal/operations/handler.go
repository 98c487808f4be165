package operations

import (
	"errors"
	"net/http"

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

// RegisterRoutes attaches operation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/operations", h.list)
	rg.GET("/operations/:id", h.get)

	admin := rg.Group("", middleware.RequireAdmin())
	admin.POST("/operations", h.create)
	admin.PUT("/operations/:id", h.update)
	admin.DELETE("/operations/:id", h.remove)
}

type operationRequest struct {
	Name              string `json:"name"`
	SequenceIndex     int    `json:"sequenceIndex"`
	DefaultDailyLimit int    `json:"defaultDailyLimit"`
	Description       string `json:"description"`
}

func (h *Handler) create(c *gin.Context) {
	var req operationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	op, err := h.Svc.Create(c.Request.Context(), req.Name, req.SequenceIndex, req.DefaultDailyLimit, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "operation name or sequence index already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create operation", nil)
		}
		return
	}

	c.Set("operationId", op.ID)
	respond.Created(c, toResponse(op))
}

func (h *Handler) get(c *gin.Context) {
	op, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "operation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch operation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(op))
}

func (h *Handler) list(c *gin.Context) {
	ops, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list operations", nil)
		return
	}
	resp := make([]gin.H, 0, len(ops))
	for _, op := range ops {
		resp = append(resp, toResponse(op))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) update(c *gin.Context) {
	var req operationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	op, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.SequenceIndex, req.DefaultDailyLimit, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "operation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInUse):
			respond.Error(c, http.StatusConflict, "operation_in_use", "operation is referenced by schedule entries", nil)
		case errors.Is(err, ErrConflict):
			respond.Error(c, http.StatusConflict, "conflict", "operation name or sequence index already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update operation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(op))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "operation not found", nil)
		case errors.Is(err, ErrInUse):
			respond.Error(c, http.StatusConflict, "operation_in_use", "operation is referenced by schedule entries", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete operation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "operation deleted"})
}

func toResponse(op Operation) gin.H {
	return gin.H{
		"operationId":       op.ID,
		"name":              op.Name,
		"sequenceIndex":     op.SequenceIndex,
		"defaultDailyLimit": op.DefaultDailyLimit,
		"description":       op.Description,
		"createdAt":         op.CreatedAt,
	}
}
