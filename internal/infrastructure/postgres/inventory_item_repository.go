package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, user_id, sku, name, quantity, unit, price, cost, gross_total, vat_amount, profit, location_id, created_at`

// InventoryItemRepo implements the InventoryItemRepository port over
// PostgreSQL. Works with a pool or a tx (Querier).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository builds the persistence adapter for stocked items.
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanInventoryItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.UserID, &it.SKU, &it.Name, &it.Quantity, &it.Unit,
		&it.Price, &it.Cost, &it.GrossTotal, &it.VATAmount, &it.Profit,
		&it.LocationID, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID fetches one item scoped by owner.
func (r *InventoryItemRepo) GetByID(id int64, userID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE id = $1 AND user_id = $2`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

// GetBySKU fetches one item by owner and barcode.
func (r *InventoryItemRepo) GetBySKU(userID, sku string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE user_id = $1 AND sku = $2`
	it, err := scanInventoryItem(r.q.QueryRow(context.Background(), query, userID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item by sku: %w", err)
	}
	return it, nil
}

// ListBySKUs fetches the owner's items matching any of the given barcodes.
func (r *InventoryItemRepo) ListBySKUs(userID string, skus []string) ([]*entity.InventoryItem, error) {
	if len(skus) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE user_id = $1 AND sku = ANY($2)`
	rows, err := r.q.Query(context.Background(), query, userID, skus)
	if err != nil {
		return nil, fmt.Errorf("list inventory items by sku: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// List pages through the owner's items, newest first.
func (r *InventoryItemRepo) List(userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Insert persists a new item and writes the generated ID back into it.
func (r *InventoryItemRepo) Insert(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (user_id, sku, name, quantity, unit, price, cost, gross_total, vat_amount, profit, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		item.UserID, item.SKU, item.Name, item.Quantity, item.Unit,
		item.Price, item.Cost, item.GrossTotal, item.VATAmount, item.Profit, item.LocationID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates a batch keyed on (sku, user_id) in one round
// trip and writes generated IDs back. The update overwrites quantity and all
// valuation fields: the caller has already merged old and new state.
func (r *InventoryItemRepo) UpsertBatch(items []*entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO inventory_items (user_id, sku, name, quantity, unit, price, cost, gross_total, vat_amount, profit, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, sku) DO UPDATE SET
			name = EXCLUDED.name,
			quantity = EXCLUDED.quantity,
			unit = EXCLUDED.unit,
			price = EXCLUDED.price,
			cost = EXCLUDED.cost,
			gross_total = EXCLUDED.gross_total,
			vat_amount = EXCLUDED.vat_amount,
			profit = EXCLUDED.profit,
			location_id = EXCLUDED.location_id
		RETURNING id, created_at`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query,
			it.UserID, it.SKU, it.Name, it.Quantity, it.Unit,
			it.Price, it.Cost, it.GrossTotal, it.VATAmount, it.Profit, it.LocationID,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for _, it := range items {
		if err := results.QueryRow().Scan(&it.ID, &it.CreatedAt); err != nil {
			return fmt.Errorf("upsert inventory item %q: %w", it.SKU, err)
		}
	}
	return nil
}

// UpdateStock writes quantity, valuation and location by (id, user_id).
func (r *InventoryItemRepo) UpdateStock(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $3, gross_total = $4, vat_amount = $5, profit = $6, location_id = $7
		WHERE id = $1 AND user_id = $2`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.UserID, item.Quantity, item.GrossTotal, item.VATAmount, item.Profit, item.LocationID,
	)
	if err != nil {
		return fmt.Errorf("update inventory item stock: %w", err)
	}
	return nil
}

// Delete removes one item scoped by owner.
func (r *InventoryItemRepo) Delete(id int64, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}
