package admins

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("admin not found")
	ErrConflict = errors.New("username already taken")
)

// Repo defines persistence operations for admin accounts.
type Repo interface {
	Create(ctx context.Context, admin Admin) error
	GetByUsername(ctx context.Context, username string) (Admin, error)
}
