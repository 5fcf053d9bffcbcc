package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implements the append-only movement ledger over
// PostgreSQL. There is no update or delete path.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository builds the persistence adapter for movements.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// InsertBatch appends a batch of movements in one round trip.
func (r *InventoryMovementRepo) InsertBatch(movements []*entity.InventoryMovement) error {
	if len(movements) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_movements (inventory_item_id, user_id, movement_type, change_qty, location_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(query, m.InventoryItemID, m.UserID, m.MovementType, m.ChangeQty, m.LocationID, m.Reason)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range movements {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert inventory movement: %w", err)
		}
	}
	return nil
}

// ListByItem pages through one item's movements, newest first.
func (r *InventoryMovementRepo) ListByItem(itemID int64, userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, inventory_item_id, user_id, movement_type, change_qty, location_id, reason, created_at
		FROM inventory_movements
		WHERE inventory_item_id = $1 AND user_id = $2
		ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
	return r.listMovements(query, itemID, userID, limit, offset)
}

// ListByUser pages through all of the owner's movements, newest first.
func (r *InventoryMovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, inventory_item_id, user_id, movement_type, change_qty, location_id, reason, created_at
		FROM inventory_movements
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.listMovements(query, userID, limit, offset)
}

func (r *InventoryMovementRepo) listMovements(query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.InventoryItemID, &m.UserID, &m.MovementType, &m.ChangeQty,
			&m.LocationID, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
