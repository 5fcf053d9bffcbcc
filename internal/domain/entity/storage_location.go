package entity

import "time"

// StorageLocation is a named place where stock is kept. Referenced by items and
// movements; never cascading-deleted by the core.
type StorageLocation struct {
	ID        int64
	UserID    string
	Name      string
	Code      string
	Address   string
	CreatedAt time.Time
}
