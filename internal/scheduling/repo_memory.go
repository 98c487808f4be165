package scheduling

import (
	"context"
	"sort"
	"sync"
)

// MemoryEntriesRepo is an in-memory implementation of EntriesRepo.
type MemoryEntriesRepo struct {
	mu      sync.RWMutex
	byOrder map[string][]Entry
}

// NewMemoryEntriesRepo constructs a MemoryEntriesRepo.
func NewMemoryEntriesRepo() *MemoryEntriesRepo {
	return &MemoryEntriesRepo{
		byOrder: make(map[string][]Entry),
	}
}

// ListByOrder returns an order's entries ordered by date.
func (r *MemoryEntriesRepo) ListByOrder(ctx context.Context, orderID string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.byOrder[orderID]
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].OperationID < out[j].OperationID
	})
	return out, nil
}

// ExistsForOperation reports whether any entry references an operation.
func (r *MemoryEntriesRepo) ExistsForOperation(ctx context.Context, operationID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entries := range r.byOrder {
		for _, e := range entries {
			if e.OperationID == operationID {
				return true, nil
			}
		}
	}
	return false, nil
}

// ReplaceForOrder swaps an order's full entry set.
func (r *MemoryEntriesRepo) ReplaceForOrder(ctx context.Context, orderID string, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(entries) == 0 {
		delete(r.byOrder, orderID)
		return nil
	}
	stored := make([]Entry, len(entries))
	copy(stored, entries)
	r.byOrder[orderID] = stored
	return nil
}

var _ EntriesRepo = (*MemoryEntriesRepo)(nil)
