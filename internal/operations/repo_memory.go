package operations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Operation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Operation),
	}
}

// Create stores a new operation.
func (r *MemoryRepo) Create(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Name == op.Name || existing.SequenceIndex == op.SequenceIndex {
			return ErrConflict
		}
	}
	r.data[op.ID] = op
	return nil
}

// GetByID returns an operation by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Operation, error) {
	if err := ctx.Err(); err != nil {
		return Operation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.data[id]
	if !ok {
		return Operation{}, ErrNotFound
	}
	return op, nil
}

// List returns all operations in pipeline order.
func (r *MemoryRepo) List(ctx context.Context) ([]Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Operation, 0, len(r.data))
	for _, op := range r.data {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SequenceIndex < out[j].SequenceIndex
	})
	return out, nil
}

// Update rewrites an operation.
func (r *MemoryRepo) Update(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[op.ID]; !ok {
		return ErrNotFound
	}
	for id, existing := range r.data {
		if id == op.ID {
			continue
		}
		if existing.Name == op.Name || existing.SequenceIndex == op.SequenceIndex {
			return ErrConflict
		}
	}
	r.data[op.ID] = op
	return nil
}

// Delete removes an operation.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
