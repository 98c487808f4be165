package operations

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("operation not found")
	ErrConflict     = errors.New("operation name or sequence index already taken")
	ErrInvalidInput = errors.New("invalid operation")
	// ErrInUse guards immutability: an operation referenced by schedule
	// entries can no longer be changed or removed.
	ErrInUse = errors.New("operation referenced by schedule entries")
)

// Repo defines persistence operations for pipeline operations.
type Repo interface {
	Create(ctx context.Context, op Operation) error
	GetByID(ctx context.Context, id string) (Operation, error)
	// List returns all operations ordered by sequence index.
	List(ctx context.Context) ([]Operation, error)
	Update(ctx context.Context, op Operation) error
	Delete(ctx context.Context, id string) error
}
