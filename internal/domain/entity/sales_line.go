package entity

import "time"

// SalesLine is one immutable line of a sales order. InventoryItemID is nil when
// the sale is not linked to tracked stock (free-form line at the till).
type SalesLine struct {
	ID              int64
	SaleID          int64
	UserID          string
	InventoryItemID *int64
	Barcode         string
	Name            string
	Qty             int
	Price           float64
	Cost            float64
	GrossTotal      float64
	VATAmount       float64
	Profit          float64
	Payment         string
	Phone           string
	CreatedAt       time.Time
}
