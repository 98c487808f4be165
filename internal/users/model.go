package users

import "time"

// User is a viewer account created from Google sign-in. Users can browse
// orders, schedules, and capacity snapshots; mutations require an admin.
type User struct {
	ID          string
	Email       string
	Name        string
	Picture     string
	CreatedAt   time.Time
	LastLoginAt time.Time
}
