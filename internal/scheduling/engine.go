package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/operations"
	"scheduler-backend/internal/orders"
	"scheduler-backend/internal/shared/metrics"
	"scheduler-backend/internal/shared/telemetry"
)

// Engine runs the forward greedy scheduler. Runs are serialized by a
// single mutex so each run sees the effect of every earlier one; planning
// happens against a request-scoped ledger and the result is committed in
// one shot.
type Engine struct {
	Operations operations.Repo
	Capacities capacities.Repo
	Orders     orders.Repo
	Entries    EntriesRepo
	Committer  Committer

	// HorizonDays bounds the forward search from the requested start date.
	HorizonDays int

	mu sync.Mutex
}

// ScheduleResult is the outcome of one scheduling run.
type ScheduleResult struct {
	Order   orders.Order
	Entries []Entry
}

// ScheduleOrder plans and commits a schedule for one order. Calling it on
// an already scheduled order releases the previous entries and recomputes
// from scratch; the swap is atomic, so readers see the old schedule or the
// new one, never a mix.
func (e *Engine) ScheduleOrder(ctx context.Context, orderID string) (ScheduleResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	started := time.Now()
	metrics.IncScheduleRun()

	order, err := e.Orders.GetByID(ctx, orderID)
	if err != nil {
		return ScheduleResult{}, err
	}

	ops, err := e.Operations.List(ctx)
	if err != nil {
		return ScheduleResult{}, err
	}
	seq, err := NewSequence(ops)
	if err != nil {
		return ScheduleResult{}, err
	}

	existing, err := e.Entries.ListByOrder(ctx, orderID)
	if err != nil {
		return ScheduleResult{}, err
	}

	startDay := capacities.Day(order.RequestedStartDate)
	window := startDay
	for _, entry := range existing {
		if d := capacities.Day(entry.Date); d.Before(window) {
			window = d
		}
	}
	rows, err := e.Capacities.ListFrom(ctx, window)
	if err != nil {
		return ScheduleResult{}, err
	}

	ledger := NewLedger(ops, rows)
	ledger.Release(existing)

	planned, status, completion, planErr := e.plan(ledger, seq, order, startDay)
	if planErr != nil {
		return ScheduleResult{}, planErr
	}

	order.Status = status
	order.CompletionDate = completion
	order.UpdatedAt = time.Now().UTC()

	set := CommitSet{
		Order:      order,
		Entries:    planned,
		Capacities: ledger.DirtyRows(),
	}
	if err := e.Committer.Commit(ctx, set); err != nil {
		telemetry.Error("schedule commit failed", map[string]any{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return ScheduleResult{}, err
	}

	elapsed := float64(time.Since(started).Microseconds()) / 1000.0
	metrics.ObserveScheduleOutcome(status)
	metrics.ObserveScheduleRunDurationMs(elapsed)
	telemetry.Info("schedule run completed", map[string]any{
		"order_id":        orderID,
		"schedule_status": status,
		"entries":         len(planned),
		"released":        len(existing),
		"duration_ms":     elapsed,
	})

	return ScheduleResult{Order: order, Entries: planned}, nil
}

// plan walks the pipeline in sequence order. The whole batch clears one
// operation before the next begins; the next operation may start on the
// day the previous one finished. Running past the horizon keeps whatever
// was planned and downgrades the status.
func (e *Engine) plan(ledger *Ledger, seq *Sequence, order orders.Order, startDay time.Time) ([]Entry, string, *time.Time, error) {
	input := order.PlannedInput()
	if input <= 0 {
		return nil, "", nil, ErrInvalidOrder
	}

	horizonEnd := startDay.AddDate(0, 0, e.HorizonDays)
	now := time.Now().UTC()

	var planned []Entry
	cursor := startDay
	for _, op := range seq.Operations() {
		remaining := input
		opCursor := cursor
		for remaining > 0 {
			daysLeft := daysBetween(opCursor, horizonEnd)
			if daysLeft <= 0 {
				return planned, exhaustedStatus(planned), nil, nil
			}
			day, err := ledger.NextAvailableDate(op.ID, opCursor, daysLeft)
			if err != nil {
				return planned, exhaustedStatus(planned), nil, nil
			}
			take := ledger.AvailableOn(op.ID, day)
			if take > remaining {
				take = remaining
			}
			if err := ledger.Reserve(op.ID, day, take); err != nil {
				return nil, "", nil, err
			}
			planned = append(planned, Entry{
				ID:          uuid.NewString(),
				OrderID:     order.ID,
				OperationID: op.ID,
				Date:        day,
				Quantity:    take,
				CreatedAt:   now,
			})
			remaining -= take
			opCursor = day
		}
		cursor = opCursor
	}

	completion := capacities.Day(planned[len(planned)-1].Date)
	return planned, orders.StatusScheduled, &completion, nil
}

func exhaustedStatus(planned []Entry) string {
	if len(planned) > 0 {
		return orders.StatusPartial
	}
	return orders.StatusFailed
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// GetSchedule returns an order with its committed entries ordered by
// pipeline position, then date.
func (e *Engine) GetSchedule(ctx context.Context, orderID string) (ScheduleResult, error) {
	order, err := e.Orders.GetByID(ctx, orderID)
	if err != nil {
		return ScheduleResult{}, err
	}
	entries, err := e.Entries.ListByOrder(ctx, orderID)
	if err != nil {
		return ScheduleResult{}, err
	}
	ops, err := e.Operations.List(ctx)
	if err != nil {
		return ScheduleResult{}, err
	}
	seq, err := NewSequence(ops)
	if err == nil {
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := seq.IndexOf(entries[i].OperationID), seq.IndexOf(entries[j].OperationID)
			if a != b {
				return a < b
			}
			return entries[i].Date.Before(entries[j].Date)
		})
	}
	return ScheduleResult{Order: order, Entries: entries}, nil
}

// CapacitySnapshot renders one operation's day-by-day availability over
// [from, to]. Days without an explicit capacity row show the operation's
// default daily limit with nothing consumed.
func (e *Engine) CapacitySnapshot(ctx context.Context, operationID string, from, to time.Time) ([]DayAvailability, error) {
	op, err := e.Operations.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	from, to = capacities.Day(from), capacities.Day(to)
	if to.Before(from) {
		return nil, capacities.ErrInvalidInput
	}

	rows, err := e.Capacities.ListRange(ctx, operationID, from, to)
	if err != nil {
		return nil, err
	}
	byDay := make(map[time.Time]capacities.Capacity, len(rows))
	for _, row := range rows {
		byDay[capacities.Day(row.Date)] = row
	}

	var out []DayAvailability
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		row, ok := byDay[d]
		if !ok {
			row = capacities.Capacity{
				OperationID: operationID,
				Date:        d,
				DailyLimit:  op.DefaultDailyLimit,
			}
		}
		out = append(out, DayAvailability{
			Date:       d,
			DailyLimit: row.DailyLimit,
			Consumed:   row.Consumed,
			Available:  row.Available(),
		})
	}
	return out, nil
}
