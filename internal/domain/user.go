package domain

import "time"

// User represents a registered account. PasswordHash holds the bcrypt hash;
// the raw password is never persisted or logged.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
