package entity

import "time"

// SalesOrder is the header of a sale: totals plus customer and tender details.
// Created together with its lines; deleted only as compensation when a later
// step of the transaction fails.
type SalesOrder struct {
	ID            int64
	UserID        string
	Reference     string // SO-<YYYYMMDD>-<4 base36 chars>
	Status        string
	CustomerName  string
	CustomerPhone string
	PaymentMethod string
	Subtotal      float64 // total minus VAT
	VATAmount     float64
	Total         float64 // VAT-inclusive
	OrderDate     time.Time
}

// Order statuses.
const (
	OrderStatusCompleted = "completed"
)
