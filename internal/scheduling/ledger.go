package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"scheduler-backend/internal/capacities"
	"scheduler-backend/internal/operations"
)

type ledgerKey struct {
	operationID string
	date        time.Time
}

// Ledger is the request-scoped working view of capacity state for one
// scheduling run. It is loaded fresh per run and never shared; all
// mutations stay in memory until the engine commits the dirty rows.
type Ledger struct {
	rows     map[ledgerKey]capacities.Capacity
	dirty    map[ledgerKey]bool
	defaults map[string]int
}

// NewLedger builds a ledger from the pipeline's operations (for default
// daily limits) and the capacity rows loaded for the run's date window.
func NewLedger(ops []operations.Operation, rows []capacities.Capacity) *Ledger {
	l := &Ledger{
		rows:     make(map[ledgerKey]capacities.Capacity, len(rows)),
		dirty:    make(map[ledgerKey]bool),
		defaults: make(map[string]int, len(ops)),
	}
	for _, op := range ops {
		l.defaults[op.ID] = op.DefaultDailyLimit
	}
	for _, row := range rows {
		row.Date = capacities.Day(row.Date)
		l.rows[ledgerKey{row.OperationID, row.Date}] = row
	}
	return l
}

// AvailableOn returns the free units for an operation-day. Days without an
// explicit capacity row fall back to the operation's default daily limit.
func (l *Ledger) AvailableOn(operationID string, date time.Time) int {
	date = capacities.Day(date)
	if row, ok := l.rows[ledgerKey{operationID, date}]; ok {
		return row.Available()
	}
	return l.defaults[operationID]
}

// Reserve takes amount units of an operation-day, creating the row lazily
// from the default limit. Reserving more than AvailableOn reported is a
// programming error and returns ErrCapacityExceeded.
func (l *Ledger) Reserve(operationID string, date time.Time, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: non-positive reservation of %d", ErrCapacityExceeded, amount)
	}
	date = capacities.Day(date)
	key := ledgerKey{operationID, date}
	row, ok := l.rows[key]
	if !ok {
		row = capacities.Capacity{
			ID:          uuid.NewString(),
			OperationID: operationID,
			Date:        date,
			DailyLimit:  l.defaults[operationID],
		}
	}
	if amount > row.Available() {
		return fmt.Errorf("%w: %d requested, %d free on %s", ErrCapacityExceeded, amount, row.Available(), date.Format(DateFormat))
	}
	row.Consumed += amount
	l.rows[key] = row
	l.dirty[key] = true
	return nil
}

// Release credits back an order's committed entries ahead of a re-schedule
// recompute. Rows whose capacity was deleted since are recreated from the
// default limit with nothing consumed.
func (l *Ledger) Release(entries []Entry) {
	for _, entry := range entries {
		date := capacities.Day(entry.Date)
		key := ledgerKey{entry.OperationID, date}
		row, ok := l.rows[key]
		if !ok {
			row = capacities.Capacity{
				ID:          uuid.NewString(),
				OperationID: entry.OperationID,
				Date:        date,
				DailyLimit:  l.defaults[entry.OperationID],
			}
		}
		row.Consumed -= entry.Quantity
		if row.Consumed < 0 {
			row.Consumed = 0
		}
		l.rows[key] = row
		l.dirty[key] = true
	}
}

// NextAvailableDate scans forward day by day from the given date for the
// first day with at least one free unit, up to horizonDays ahead.
func (l *Ledger) NextAvailableDate(operationID string, from time.Time, horizonDays int) (time.Time, error) {
	from = capacities.Day(from)
	for i := 0; i < horizonDays; i++ {
		d := from.AddDate(0, 0, i)
		if l.AvailableOn(operationID, d) > 0 {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: searched %d days from %s", ErrNoCapacityWithinHorizon, horizonDays, from.Format(DateFormat))
}

// DirtyRows returns the capacity rows this run changed, for the commit step.
func (l *Ledger) DirtyRows() []capacities.Capacity {
	out := make([]capacities.Capacity, 0, len(l.dirty))
	for key := range l.dirty {
		out = append(out, l.rows[key])
	}
	return out
}
