package admins

import "time"

// Admin is a password-backed account allowed to mutate the pipeline:
// operations, capacities, orders, and scheduling runs.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
