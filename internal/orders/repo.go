package orders

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrInvalidInput = errors.New("invalid order")
)

// Repo defines persistence operations for orders.
type Repo interface {
	Create(ctx context.Context, order Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	// List returns orders newest-first, honoring limit/offset.
	List(ctx context.Context, limit, offset int) ([]Order, error)
	// UpdateScheduleOutcome writes the engine's result for one run.
	UpdateScheduleOutcome(ctx context.Context, order Order) error
}
