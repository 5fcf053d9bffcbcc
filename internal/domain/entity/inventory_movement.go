package entity

import "time"

// Movement directions.
const (
	MovementIN  = "IN"  // stock increase
	MovementOUT = "OUT" // stock decrease
)

// InventoryMovement is one immutable ledger entry. The sum of signed movements
// for an item equals its current quantity minus its initial quantity. Movements
// are append-only: the ledger never updates or deletes them.
type InventoryMovement struct {
	ID              int64
	InventoryItemID int64
	UserID          string
	MovementType    string // IN or OUT
	ChangeQty       int    // positive magnitude
	LocationID      *int64 // location snapshot at time of change
	Reason          string // "Manual addition", "Excel import", "Sale SO-...", ...
	CreatedAt       time.Time
}
