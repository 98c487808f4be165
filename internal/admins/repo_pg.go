package admins

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, admin Admin) error {
	const query = `
INSERT INTO admins (id, username, password_hash, name, created_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (username) DO NOTHING`

	var name sql.NullString
	if admin.Name != "" {
		name = sql.NullString{String: admin.Name, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx, query, admin.ID, admin.Username, admin.PasswordHash, name)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (Admin, error) {
	const query = `
SELECT id, username, password_hash, name, created_at
FROM admins
WHERE username = $1
LIMIT 1`

	var admin Admin
	var name sql.NullString
	err := r.DB.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&name,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	if name.Valid {
		admin.Name = name.String
	}
	return admin, nil
}

var _ Repo = (*PGRepo)(nil)
