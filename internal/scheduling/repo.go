package scheduling

import (
	"context"
	"errors"

	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/orders"
)

var ErrNotFound = errors.New("schedule entry not found")

// EntriesRepo defines persistence operations for schedule entries.
type EntriesRepo interface {
	// ListByOrder returns an order's entries ordered by date.
	ListByOrder(ctx context.Context, orderID string) ([]Entry, error)
	// ExistsForOperation reports whether any entry references an operation;
	// referenced operations are immutable.
	ExistsForOperation(ctx context.Context, operationID string) (bool, error)
	// ReplaceForOrder swaps an order's full entry set.
	ReplaceForOrder(ctx context.Context, orderID string, entries []Entry) error
}

// CommitSet is everything one scheduling run writes: the order's new entry
// set (replacing any previous one), the capacity rows the run touched with
// their absolute consumed values, and the order's outcome.
type CommitSet struct {
	Order      orders.Order
	Entries    []Entry
	Capacities []capacities.Capacity
}

// Committer applies a CommitSet so that either all of it or none of it
// becomes visible. The engine plans in memory first and commits once, so
// an interrupted run leaves pre-run or post-run state only.
type Committer interface {
	Commit(ctx context.Context, set CommitSet) error
}

// RepoCommitter applies a CommitSet through the ordinary repos. It relies
// on the engine's single-writer lock for isolation and is used with the
// in-memory repos; database deployments use PGCommitter instead.
type RepoCommitter struct {
	Orders     orders.Repo
	Capacities capacities.Repo
	Entries    EntriesRepo
}

// Commit writes capacities first: if the invariant guard trips, neither
// entries nor the order outcome are touched.
func (c *RepoCommitter) Commit(ctx context.Context, set CommitSet) error {
	if err := c.Capacities.ApplyReservations(ctx, set.Capacities); err != nil {
		return err
	}
	if err := c.Entries.ReplaceForOrder(ctx, set.Order.ID, set.Entries); err != nil {
		return err
	}
	return c.Orders.UpdateScheduleOutcome(ctx, set.Order)
}

var _ Committer = (*RepoCommitter)(nil)
