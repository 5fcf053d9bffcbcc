package repository

import "github.com/mahalpos/pos-api/internal/domain/entity"

// InventoryMovementRepository is the append-only persistence port for the
// movement ledger. There is deliberately no update or delete.
type InventoryMovementRepository interface {
	InsertBatch(movements []*entity.InventoryMovement) error
	ListByItem(itemID int64, userID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
