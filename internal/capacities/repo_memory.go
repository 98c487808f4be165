package capacities

import (
	"context"
	"sort"
	"sync"
	"time"
)

type dayKey struct {
	operationID string
	date        time.Time
}

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[dayKey]Capacity
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[dayKey]Capacity),
	}
}

// Create stores a new capacity row.
func (r *MemoryRepo) Create(ctx context.Context, cap Capacity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cap.Date = Day(cap.Date)
	key := dayKey{cap.OperationID, cap.Date}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; ok {
		return ErrConflict
	}
	r.data[key] = cap
	return nil
}

// GetByID returns a capacity row by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Capacity, error) {
	if err := ctx.Err(); err != nil {
		return Capacity{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cap := range r.data {
		if cap.ID == id {
			return cap, nil
		}
	}
	return Capacity{}, ErrNotFound
}

// ListFrom returns all rows on or after the given day.
func (r *MemoryRepo) ListFrom(ctx context.Context, from time.Time) ([]Capacity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from = Day(from)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Capacity
	for _, cap := range r.data {
		if !cap.Date.Before(from) {
			out = append(out, cap)
		}
	}
	sortRows(out)
	return out, nil
}

// ListRange returns one operation's rows inside [from, to].
func (r *MemoryRepo) ListRange(ctx context.Context, operationID string, from, to time.Time) ([]Capacity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	from, to = Day(from), Day(to)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Capacity
	for _, cap := range r.data {
		if cap.OperationID == operationID && !cap.Date.Before(from) && !cap.Date.After(to) {
			out = append(out, cap)
		}
	}
	sortRows(out)
	return out, nil
}

// UpdateLimit changes a row's daily limit, keeping consumed within bounds.
func (r *MemoryRepo) UpdateLimit(ctx context.Context, id string, dailyLimit int) (Capacity, error) {
	if err := ctx.Err(); err != nil {
		return Capacity{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, cap := range r.data {
		if cap.ID != id {
			continue
		}
		if cap.Consumed > dailyLimit {
			return Capacity{}, ErrLimitBelowConsumed
		}
		cap.DailyLimit = dailyLimit
		r.data[key] = cap
		return cap, nil
	}
	return Capacity{}, ErrNotFound
}

// Delete removes an unreserved capacity row.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, cap := range r.data {
		if cap.ID != id {
			continue
		}
		if cap.Consumed != 0 {
			return ErrLimitBelowConsumed
		}
		delete(r.data, key)
		return nil
	}
	return ErrNotFound
}

// ApplyReservations upserts engine-computed rows with the invariant guard.
func (r *MemoryRepo) ApplyReservations(ctx context.Context, rows []Capacity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		if row.Consumed > row.DailyLimit || row.Consumed < 0 {
			return ErrOverCommitted
		}
	}
	for _, row := range rows {
		row.Date = Day(row.Date)
		key := dayKey{row.OperationID, row.Date}
		if existing, ok := r.data[key]; ok {
			row.ID = existing.ID
		}
		r.data[key] = row
	}
	return nil
}

func sortRows(rows []Capacity) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OperationID != rows[j].OperationID {
			return rows[i].OperationID < rows[j].OperationID
		}
		return rows[i].Date.Before(rows[j].Date)
	})
}

var _ Repo = (*MemoryRepo)(nil)
