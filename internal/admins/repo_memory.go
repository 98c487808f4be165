package admins

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu         sync.RWMutex
	byUsername map[string]Admin
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUsername: make(map[string]Admin)}
}

func (r *MemoryRepo) Create(ctx context.Context, admin Admin) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[admin.Username]; ok {
		return ErrConflict
	}
	r.byUsername[admin.Username] = admin
	return nil
}

func (r *MemoryRepo) GetByUsername(ctx context.Context, username string) (Admin, error) {
	if err := ctx.Err(); err != nil {
		return Admin{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.byUsername[username]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return admin, nil
}

var _ Repo = (*MemoryRepo)(nil)
