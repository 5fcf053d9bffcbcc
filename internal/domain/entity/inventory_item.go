package entity

import "time"

// InventoryItem is the authoritative stock record for one SKU, owned by a single
// user. The monetary aggregates (GrossTotal, VATAmount, Profit) value the stock
// that remains on hand, not a running sales total; they are recomputed whenever
// the quantity changes.
type InventoryItem struct {
	ID         int64
	UserID     string
	SKU        string // barcode; best-effort unique per owner, may be empty
	Name       string
	Quantity   int // never negative
	Unit       string
	Price      float64 // retail price, VAT inclusive
	Cost       float64 // wholesale price per unit
	GrossTotal float64
	VATAmount  float64
	Profit     float64
	LocationID *int64
	CreatedAt  time.Time
}
