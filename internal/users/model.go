package users

import "time"

// User represents an authenticated principal. Usernames are unique.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
