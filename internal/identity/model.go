package identity

import "time"

// User represents a registered investor account.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
}

// Credentials carries the data needed to register or authenticate a user.
type Credentials struct {
	Email    string
	Password string
	FullName string
}
