package orders

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

// Create inserts a new order.
func (r *PGRepo) Create(ctx context.Context, order Order) error {
	const query = `
INSERT INTO orders (
    id,
    internal_model,
    quantity,
    estimated_yield,
    requested_start_date,
    due_date,
    status,
    completion_date,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8, $8)`

	var internalModel sql.NullString
	if order.InternalModel != "" {
		internalModel = sql.NullString{String: order.InternalModel, Valid: true}
	}
	var estimatedYield sql.NullFloat64
	if order.EstimatedYield != nil {
		estimatedYield = sql.NullFloat64{Float64: *order.EstimatedYield, Valid: true}
	}
	var dueDate sql.NullTime
	if order.DueDate != nil {
		dueDate = sql.NullTime{Time: *order.DueDate, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		order.ID,
		internalModel,
		order.Quantity,
		estimatedYield,
		order.RequestedStartDate,
		dueDate,
		order.Status,
		order.CreatedAt,
	)
	return err
}

const selectColumns = `
SELECT id, internal_model, quantity, estimated_yield, requested_start_date, due_date, status, completion_date, created_at, updated_at
FROM orders`

// GetByID fetches an order by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Order, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return order, nil
}

// List returns orders newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, rows.Err()
}

// UpdateScheduleOutcome writes status and completion date after a run.
func (r *PGRepo) UpdateScheduleOutcome(ctx context.Context, order Order) error {
	const query = `
UPDATE orders
SET status = $1, completion_date = $2, updated_at = $3
WHERE id = $4`

	var completion sql.NullTime
	if order.CompletionDate != nil {
		completion = sql.NullTime{Time: *order.CompletionDate, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, order.Status, completion, time.Now().UTC(), order.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var order Order
	var internalModel sql.NullString
	var estimatedYield sql.NullFloat64
	var dueDate sql.NullTime
	var completion sql.NullTime
	err := row.Scan(
		&order.ID,
		&internalModel,
		&order.Quantity,
		&estimatedYield,
		&order.RequestedStartDate,
		&dueDate,
		&order.Status,
		&completion,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	if internalModel.Valid {
		order.InternalModel = internalModel.String
	}
	if estimatedYield.Valid {
		order.EstimatedYield = &estimatedYield.Float64
	}
	if dueDate.Valid {
		t := dueDate.Time
		order.DueDate = &t
	}
	if completion.Valid {
		t := completion.Time
		order.CompletionDate = &t
	}
	return order, nil
}

var _ Repo = (*PGRepo)(nil)
