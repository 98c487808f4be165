package scheduling

import (
	"context"
	"database/sql"
	"time"

	"scheduler-backend/internal/capacities"
)

// PGEntriesRepo implements EntriesRepo using Postgres.
type PGEntriesRepo struct {
	DB *sql.DB
}

// ListByOrder returns an order's entries ordered by date.
func (r *PGEntriesRepo) ListByOrder(ctx context.Context, orderID string) ([]Entry, error) {
	const query = `
SELECT id, order_id, operation_id, date, quantity, created_at
FROM schedule_entries
WHERE order_id = $1
ORDER BY date, operation_id`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.OperationID, &e.Date, &e.Quantity, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ExistsForOperation reports whether any entry references an operation.
func (r *PGEntriesRepo) ExistsForOperation(ctx context.Context, operationID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM schedule_entries WHERE operation_id = $1)`

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, operationID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ReplaceForOrder swaps an order's full entry set.
func (r *PGEntriesRepo) ReplaceForOrder(ctx context.Context, orderID string, entries []Entry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replaceEntries(ctx, tx, orderID, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceEntries(ctx context.Context, tx *sql.Tx, orderID string, entries []Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE order_id = $1`, orderID); err != nil {
		return err
	}

	const insert = `
INSERT INTO schedule_entries (id, order_id, operation_id, date, quantity, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, insert, e.ID, e.OrderID, e.OperationID, e.Date, e.Quantity, e.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

var _ EntriesRepo = (*PGEntriesRepo)(nil)

// PGCommitter applies a CommitSet inside one transaction. Capacity writes
// go through the consumed <= daily_limit guard; a tripped guard rolls the
// whole run back.
type PGCommitter struct {
	DB *sql.DB
}

// Commit writes capacities, entries, and the order outcome atomically.
func (c *PGCommitter) Commit(ctx context.Context, set CommitSet) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range set.Capacities {
		if err := capacities.ApplyReservation(ctx, tx, row); err != nil {
			return err
		}
	}

	if err := replaceEntries(ctx, tx, set.Order.ID, set.Entries); err != nil {
		return err
	}

	const updateOrder = `
UPDATE orders
SET status = $1, completion_date = $2, updated_at = $3
WHERE id = $4`

	var completion sql.NullTime
	if set.Order.CompletionDate != nil {
		completion = sql.NullTime{Time: *set.Order.CompletionDate, Valid: true}
	}
	if _, err := tx.ExecContext(ctx, updateOrder, set.Order.Status, completion, time.Now().UTC(), set.Order.ID); err != nil {
		return err
	}

	return tx.Commit()
}

var _ Committer = (*PGCommitter)(nil)
