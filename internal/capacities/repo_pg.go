package capacities

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a capacity row.
func (r *PGRepo) Create(ctx context.Context, cap Capacity) error {
	const query = `
INSERT INTO capacities (id, operation_id, date, daily_limit, consumed)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (operation_id, date) DO NOTHING`

	res, err := r.DB.ExecContext(ctx, query, cap.ID, cap.OperationID, Day(cap.Date), cap.DailyLimit, cap.Consumed)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

// GetByID fetches one capacity row.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Capacity, error) {
	const query = `
SELECT id, operation_id, date, daily_limit, consumed
FROM capacities
WHERE id = $1`
	var cap Capacity
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&cap.ID, &cap.OperationID, &cap.Date, &cap.DailyLimit, &cap.Consumed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Capacity{}, ErrNotFound
		}
		return Capacity{}, err
	}
	cap.Date = Day(cap.Date)
	return cap, nil
}

// ListFrom returns all rows on or after the given day.
func (r *PGRepo) ListFrom(ctx context.Context, from time.Time) ([]Capacity, error) {
	const query = `
SELECT id, operation_id, date, daily_limit, consumed
FROM capacities
WHERE date >= $1
ORDER BY operation_id, date`
	return r.queryRows(ctx, query, Day(from))
}

// ListRange returns one operation's rows inside [from, to].
func (r *PGRepo) ListRange(ctx context.Context, operationID string, from, to time.Time) ([]Capacity, error) {
	const query = `
SELECT id, operation_id, date, daily_limit, consumed
FROM capacities
WHERE operation_id = $1 AND date >= $2 AND date <= $3
ORDER BY date`
	return r.queryRows(ctx, query, operationID, Day(from), Day(to))
}

// UpdateLimit changes a row's daily limit, keeping consumed within bounds.
func (r *PGRepo) UpdateLimit(ctx context.Context, id string, dailyLimit int) (Capacity, error) {
	const query = `
UPDATE capacities
SET daily_limit = $1
WHERE id = $2 AND consumed <= $1
RETURNING id, operation_id, date, daily_limit, consumed`
	var cap Capacity
	err := r.DB.QueryRowContext(ctx, query, dailyLimit, id).Scan(&cap.ID, &cap.OperationID, &cap.Date, &cap.DailyLimit, &cap.Consumed)
	if err == nil {
		cap.Date = Day(cap.Date)
		return cap, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Capacity{}, err
	}

	// Row missing entirely, or the guard rejected the new limit.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return Capacity{}, getErr
	}
	return Capacity{}, ErrLimitBelowConsumed
}

// Delete removes an unreserved capacity row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM capacities WHERE id = $1 AND consumed = 0`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrLimitBelowConsumed
	}
	return nil
}

// ApplyReservations upserts engine-computed rows with the invariant guard.
// Callers needing atomicity across rows wrap this in a transaction; the
// in-memory committer relies on the engine's single-writer lock instead.
func (r *PGRepo) ApplyReservations(ctx context.Context, rows []Capacity) error {
	for _, row := range rows {
		if err := ApplyReservation(ctx, r.DB, row); err != nil {
			return err
		}
	}
	return nil
}

// Execer is the subset of *sql.DB / *sql.Tx needed for reservation writes.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ApplyReservation upserts a single engine-computed row. It is exported so
// the scheduling committer can run it inside its own transaction.
func ApplyReservation(ctx context.Context, db Execer, row Capacity) error {
	if row.Consumed > row.DailyLimit || row.Consumed < 0 {
		return ErrOverCommitted
	}
	const query = `
INSERT INTO capacities (id, operation_id, date, daily_limit, consumed)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (operation_id, date)
DO UPDATE SET consumed = EXCLUDED.consumed, daily_limit = EXCLUDED.daily_limit
WHERE EXCLUDED.consumed <= EXCLUDED.daily_limit`
	res, err := db.ExecContext(ctx, query, row.ID, row.OperationID, Day(row.Date), row.DailyLimit, row.Consumed)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOverCommitted
	}
	return nil
}

func (r *PGRepo) queryRows(ctx context.Context, query string, args ...any) ([]Capacity, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Capacity
	for rows.Next() {
		var cap Capacity
		if err := rows.Scan(&cap.ID, &cap.OperationID, &cap.Date, &cap.DailyLimit, &cap.Consumed); err != nil {
			return nil, err
		}
		cap.Date = Day(cap.Date)
		out = append(out, cap)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
