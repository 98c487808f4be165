package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateInput carries validated-on-entry order fields.
type CreateInput struct {
	InternalModel      string
	Quantity           int
	EstimatedYield     *float64
	RequestedStartDate time.Time
	DueDate            *time.Time
}

// Service contains business logic for orders.
type Service struct {
	Repo Repo
}

// Create validates and stores a new order in PENDING state.
func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	if in.Quantity <= 0 {
		return Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if in.EstimatedYield != nil && (*in.EstimatedYield <= 0 || *in.EstimatedYield > 100) {
		return Order{}, fmt.Errorf("%w: estimated yield must be in (0, 100]", ErrInvalidInput)
	}
	if in.RequestedStartDate.IsZero() {
		return Order{}, fmt.Errorf("%w: requested start date is required", ErrInvalidInput)
	}
	if in.DueDate != nil && in.DueDate.Before(in.RequestedStartDate) {
		return Order{}, fmt.Errorf("%w: due date before requested start date", ErrInvalidInput)
	}

	now := time.Now().UTC()
	order := Order{
		ID:                 uuid.NewString(),
		InternalModel:      strings.TrimSpace(in.InternalModel),
		Quantity:           in.Quantity,
		EstimatedYield:     in.EstimatedYield,
		RequestedStartDate: in.RequestedStartDate,
		DueDate:            in.DueDate,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.Repo.Create(ctx, order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns orders newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Order, error) {
	return s.Repo.List(ctx, limit, offset)
}
