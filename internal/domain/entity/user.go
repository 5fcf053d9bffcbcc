package entity

import "time"

// User is the owner identity every row is scoped by.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
