package capacities

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("capacity not found")
	ErrConflict     = errors.New("capacity row already exists for operation and date")
	ErrInvalidInput = errors.New("invalid capacity")
	// ErrLimitBelowConsumed rejects lowering a daily limit under what the
	// engine already reserved.
	ErrLimitBelowConsumed = errors.New("daily limit below consumed amount")
	// ErrOverCommitted signals a reservation write that would push consumed
	// past the daily limit. The engine treats it as a concurrency bug.
	ErrOverCommitted = errors.New("capacity over-committed")
)

// Repo defines persistence operations for per-day capacities.
type Repo interface {
	Create(ctx context.Context, cap Capacity) error
	GetByID(ctx context.Context, id string) (Capacity, error)
	// ListFrom returns all capacity rows on or after the given day,
	// across all operations, ordered by (operation_id, date).
	ListFrom(ctx context.Context, from time.Time) ([]Capacity, error)
	// ListRange returns one operation's rows inside [from, to].
	ListRange(ctx context.Context, operationID string, from, to time.Time) ([]Capacity, error)
	UpdateLimit(ctx context.Context, id string, dailyLimit int) (Capacity, error)
	Delete(ctx context.Context, id string) error
	// ApplyReservations upserts engine-computed rows. Absolute consumed
	// values are written, guarded by the consumed <= daily_limit invariant.
	ApplyReservations(ctx context.Context, rows []Capacity) error
}
