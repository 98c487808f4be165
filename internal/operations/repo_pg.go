package operations

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new operation.
func (r *PGRepo) Create(ctx context.Context, op Operation) error {
	const query = `
INSERT INTO operations (id, name, sequence_index, default_daily_limit, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var description sql.NullString
	if op.Description != "" {
		description = sql.NullString{String: op.Description, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		op.ID,
		op.Name,
		op.SequenceIndex,
		op.DefaultDailyLimit,
		description,
		op.CreatedAt,
	)
	return err
}

// GetByID fetches an operation by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Operation, error) {
	const query = `
SELECT id, name, sequence_index, default_daily_limit, description, created_at
FROM operations
WHERE id = $1`
	var op Operation
	var description sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&op.ID,
		&op.Name,
		&op.SequenceIndex,
		&op.DefaultDailyLimit,
		&description,
		&op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Operation{}, ErrNotFound
		}
		return Operation{}, err
	}
	if description.Valid {
		op.Description = description.String
	}
	return op, nil
}

// List returns all operations in pipeline order.
func (r *PGRepo) List(ctx context.Context) ([]Operation, error) {
	const query = `
SELECT id, name, sequence_index, default_daily_limit, description, created_at
FROM operations
ORDER BY sequence_index ASC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Operation
	for rows.Next() {
		var op Operation
		var description sql.NullString
		if err := rows.Scan(
			&op.ID,
			&op.Name,
			&op.SequenceIndex,
			&op.DefaultDailyLimit,
			&description,
			&op.CreatedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			op.Description = description.String
		}
		out = append(out, op)
	}
	return out, rows.Err()
}

// Update rewrites an operation's mutable fields.
func (r *PGRepo) Update(ctx context.Context, op Operation) error {
	const query = `
UPDATE operations
SET name = $1, sequence_index = $2, default_daily_limit = $3, description = $4
WHERE id = $5`

	var description sql.NullString
	if op.Description != "" {
		description = sql.NullString{String: op.Description, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, op.Name, op.SequenceIndex, op.DefaultDailyLimit, description, op.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an operation.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM operations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
