package users

import "time"

// User es un adoptante que hace swipes.
type User struct {
	ID        string
	Username  string
	Email     string
	CreatedAt time.Time
}
