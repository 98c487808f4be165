package operations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntryChecker reports whether any schedule entries reference an operation.
// Wired to the scheduling entries repo by bootstrap.
type EntryChecker interface {
	ExistsForOperation(ctx context.Context, operationID string) (bool, error)
}

// Service contains business logic for pipeline operations.
type Service struct {
	Repo    Repo
	Entries EntryChecker
}

// Create validates and stores a new operation.
func (s *Service) Create(ctx context.Context, name string, sequenceIndex, defaultDailyLimit int, description string) (Operation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Operation{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if defaultDailyLimit < 0 {
		return Operation{}, fmt.Errorf("%w: default daily limit must not be negative", ErrInvalidInput)
	}

	op := Operation{
		ID:                uuid.NewString(),
		Name:              name,
		SequenceIndex:     sequenceIndex,
		DefaultDailyLimit: defaultDailyLimit,
		Description:       strings.TrimSpace(description),
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, op); err != nil {
		return Operation{}, err
	}
	return op, nil
}

// Get returns one operation.
func (s *Service) Get(ctx context.Context, id string) (Operation, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns the full pipeline in sequence order.
func (s *Service) List(ctx context.Context) ([]Operation, error) {
	return s.Repo.List(ctx)
}

// Update rewrites an operation unless it is already referenced by schedule
// entries; referenced operations are immutable.
func (s *Service) Update(ctx context.Context, id, name string, sequenceIndex, defaultDailyLimit int, description string) (Operation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Operation{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if defaultDailyLimit < 0 {
		return Operation{}, fmt.Errorf("%w: default daily limit must not be negative", ErrInvalidInput)
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Operation{}, err
	}

	if err := s.ensureUnreferenced(ctx, id); err != nil {
		return Operation{}, err
	}

	existing.Name = name
	existing.SequenceIndex = sequenceIndex
	existing.DefaultDailyLimit = defaultDailyLimit
	existing.Description = strings.TrimSpace(description)

	if err := s.Repo.Update(ctx, existing); err != nil {
		return Operation{}, err
	}
	return existing, nil
}

// Delete removes an operation unless schedule entries reference it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.ensureUnreferenced(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) ensureUnreferenced(ctx context.Context, id string) error {
	if s.Entries == nil {
		return nil
	}
	referenced, err := s.Entries.ExistsForOperation(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrInUse
	}
	return nil
}
