package repository

import "github.com/mahalpos/pos-api/internal/domain/entity"

// InventoryItemRepository is the persistence port for stocked items. Every
// method is scoped by the owning user; a row that belongs to another owner is
// indistinguishable from a missing row.
type InventoryItemRepository interface {
	GetByID(id int64, userID string) (*entity.InventoryItem, error)
	GetBySKU(userID, sku string) (*entity.InventoryItem, error)
	// ListBySKUs returns the owner's items matching any of the given SKUs.
	ListBySKUs(userID string, skus []string) ([]*entity.InventoryItem, error)
	List(userID string, limit, offset int) ([]*entity.InventoryItem, error)
	// Insert persists a new item and assigns its store-generated ID.
	Insert(item *entity.InventoryItem) error
	// UpsertBatch inserts or updates a batch keyed on (sku, user_id) in one
	// round trip, assigning store-generated IDs to created rows.
	UpsertBatch(items []*entity.InventoryItem) error
	// UpdateStock writes quantity, valuation aggregates and location by
	// (id, user_id). Only the inventory ledger may call it.
	UpdateStock(item *entity.InventoryItem) error
	Delete(id int64, userID string) error
}
