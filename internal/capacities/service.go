package capacities

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scheduler-backend/internal/operations"
)

// Service contains business logic for capacity management.
type Service struct {
	Repo       Repo
	Operations operations.Repo
}

// Create validates and stores a capacity row for one operation-day.
func (s *Service) Create(ctx context.Context, operationID string, date time.Time, dailyLimit int) (Capacity, error) {
	if dailyLimit < 0 {
		return Capacity{}, fmt.Errorf("%w: daily limit must not be negative", ErrInvalidInput)
	}
	if _, err := s.Operations.GetByID(ctx, operationID); err != nil {
		return Capacity{}, fmt.Errorf("%w: unknown operation", ErrInvalidInput)
	}

	cap := Capacity{
		ID:          uuid.NewString(),
		OperationID: operationID,
		Date:        Day(date),
		DailyLimit:  dailyLimit,
	}
	if err := s.Repo.Create(ctx, cap); err != nil {
		return Capacity{}, err
	}
	return cap, nil
}

// Get returns one capacity row.
func (s *Service) Get(ctx context.Context, id string) (Capacity, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all capacity rows from the given day onward.
func (s *Service) List(ctx context.Context, from time.Time) ([]Capacity, error) {
	return s.Repo.ListFrom(ctx, from)
}

// UpdateLimit changes a row's daily limit. Limits below the amount the
// engine already reserved are rejected.
func (s *Service) UpdateLimit(ctx context.Context, id string, dailyLimit int) (Capacity, error) {
	if dailyLimit < 0 {
		return Capacity{}, fmt.Errorf("%w: daily limit must not be negative", ErrInvalidInput)
	}
	return s.Repo.UpdateLimit(ctx, id, dailyLimit)
}

// Delete removes a capacity row that has no reservations against it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
