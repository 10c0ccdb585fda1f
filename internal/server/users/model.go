package users

import "time"

// User is a vault account record. PasswordHash holds the salted bcrypt hash
// and is never serialized to clients.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
