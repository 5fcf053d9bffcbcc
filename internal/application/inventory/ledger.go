package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	domaininv "github.com/mahalpos/pos-api/internal/domain/inventory"
	"github.com/mahalpos/pos-api/internal/domain/money"
	"github.com/mahalpos/pos-api/internal/domain/repository"
	"github.com/mahalpos/pos-api/pkg/logger"
)

// Movement reasons written to the ledger.
const (
	ReasonManualAddition = "Manual addition"
	ReasonExcelImport    = "Excel import"
	ReasonManualRemoval  = "Manual removal"
)

// Ledger owns the stock quantity of every inventory item. It is the only
// component that changes quantities and the only one that appends movements;
// everything else goes through it.
//
// Movement inserts that happen after the primary quantity write has already
// succeeded are best-effort: a failure there is logged with the
// movement_log_incomplete marker and never rolls back the stock change.
type Ledger struct {
	items     repository.InventoryItemRepository
	movements repository.InventoryMovementRepository
	locations repository.StorageLocationRepository
	vatRate   float64 // percent, fixed per deployment
	log       *logger.Logger
}

// NewLedger builds the ledger. Repositories may be nil when no store is
// configured; operations then fail with domain.ErrNotConfigured instead of
// scoping rows to nobody.
func NewLedger(
	items repository.InventoryItemRepository,
	movements repository.InventoryMovementRepository,
	locations repository.StorageLocationRepository,
	vatRate float64,
	log *logger.Logger,
) *Ledger {
	return &Ledger{
		items:     items,
		movements: movements,
		locations: locations,
		vatRate:   vatRate,
		log:       log,
	}
}

func (l *Ledger) configured() error {
	if l.items == nil || l.movements == nil {
		return domain.ErrNotConfigured
	}
	return nil
}

// ImportBatch merges the rows by SKU, then upserts all affected items in one
// multi-row write keyed on (sku, owner) and appends one IN movement per item
// with the delta that was added (not the new total). Existing items keep their
// location unless the row supplies one. Returns the number of distinct SKUs
// processed.
func (l *Ledger) ImportBatch(ctx context.Context, userID string, rows []domaininv.ImportRow, reason string) (int, error) {
	if err := l.configured(); err != nil {
		return 0, err
	}
	if userID == "" {
		return 0, domain.ErrUnauthorized
	}

	merged := domaininv.MergeBatch(rows)
	if len(merged) == 0 {
		return 0, nil
	}

	skus := make([]string, 0, len(merged))
	for _, row := range merged {
		skus = append(skus, row.SKU)
	}
	existing, err := l.items.ListBySKUs(userID, skus)
	if err != nil {
		return 0, fmt.Errorf("look up items by sku: %w", err)
	}
	bySKU := make(map[string]*entity.InventoryItem, len(existing))
	for _, item := range existing {
		bySKU[item.SKU] = item
	}

	now := time.Now()
	items := make([]*entity.InventoryItem, 0, len(merged))
	for _, row := range merged {
		item := &entity.InventoryItem{
			UserID:     userID,
			SKU:        row.SKU,
			Name:       row.Name,
			Quantity:   row.Qty,
			Unit:       row.Unit,
			Price:      row.Price,
			Cost:       row.Cost,
			LocationID: row.LocationID,
			CreatedAt:  now,
		}
		if ex, ok := bySKU[row.SKU]; ok {
			item.ID = ex.ID
			item.Quantity = ex.Quantity + row.Qty
			if row.LocationID == nil {
				item.LocationID = ex.LocationID
			}
			if row.Price == 0 {
				item.Price = ex.Price
			}
			if row.Cost == 0 {
				item.Cost = ex.Cost
			}
			item.CreatedAt = ex.CreatedAt
		}
		item.GrossTotal, item.VATAmount, item.Profit = l.valuation(item.Price, item.Cost, item.Quantity)
		items = append(items, item)
	}

	if err := l.items.UpsertBatch(items); err != nil {
		return 0, fmt.Errorf("upsert import batch: %w", err)
	}

	movements := make([]*entity.InventoryMovement, 0, len(merged))
	for i, row := range merged {
		movements = append(movements, &entity.InventoryMovement{
			InventoryItemID: items[i].ID,
			UserID:          userID,
			MovementType:    entity.MovementIN,
			ChangeQty:       row.Qty,
			LocationID:      items[i].LocationID,
			Reason:          reason,
			CreatedAt:       now,
		})
	}
	l.appendMovements(movements)

	return len(merged), nil
}

// AddToStorage increases the quantity of one item. The explicit location wins
// over the item's current one. Fails with ErrInvalidQuantity for a
// non-positive quantity and ErrItemNotFound when the scoped row is missing.
func (l *Ledger) AddToStorage(ctx context.Context, userID string, itemID int64, quantity int, locationID *int64) error {
	return l.increase(ctx, userID, itemID, quantity, locationID, ReasonManualAddition)
}

// Restock puts quantity back on an item, recording the reason on the IN
// movement. Used by the sales coordinator to compensate a decrement after a
// later transaction step fails: the ledger stays append-only, so the undo is
// an opposite-direction movement, not an erased one.
func (l *Ledger) Restock(ctx context.Context, userID string, itemID int64, quantity int, reason string) error {
	return l.increase(ctx, userID, itemID, quantity, nil, reason)
}

func (l *Ledger) increase(ctx context.Context, userID string, itemID int64, quantity int, locationID *int64, reason string) error {
	if err := l.configured(); err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	item, err := l.items.GetByID(itemID, userID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	item.Quantity += quantity
	if locationID != nil {
		item.LocationID = locationID
	}
	item.GrossTotal, item.VATAmount, item.Profit = l.revalue(item)

	if err := l.items.UpdateStock(item); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	l.appendMovements([]*entity.InventoryMovement{{
		InventoryItemID: item.ID,
		UserID:          userID,
		MovementType:    entity.MovementIN,
		ChangeQty:       quantity,
		LocationID:      item.LocationID,
		Reason:          reason,
		CreatedAt:       time.Now(),
	}})
	return nil
}

// RemoveItem hard-deletes the item row. When the removed item still had stock,
// a compensating OUT movement for the remaining quantity is appended
// best-effort so the ledger records where the stock went. A missing item is a
// no-op.
func (l *Ledger) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if err := l.configured(); err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}

	item, err := l.items.GetByID(itemID, userID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil
	}

	if err := l.items.Delete(itemID, userID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if item.Quantity > 0 {
		l.appendMovements([]*entity.InventoryMovement{{
			InventoryItemID: item.ID,
			UserID:          userID,
			MovementType:    entity.MovementOUT,
			ChangeQty:       item.Quantity,
			LocationID:      item.LocationID,
			Reason:          ReasonManualRemoval,
			CreatedAt:       time.Now(),
		}})
	}
	return nil
}

// DecrementForSale applies one sold line to the stocked item it refers to,
// resolved by inventory item id first and barcode second. A line with no
// matching item is skipped (sales need not be linked to tracked stock). The
// quantity clamps at 0 instead of going negative: overselling silently caps
// the decrement. The item's valuation is recomputed proportionally using the
// VAT ratio already recorded on it, falling back to the default rate when the
// item had no prior gross.
func (l *Ledger) DecrementForSale(ctx context.Context, userID string, line entity.Line, reason string) error {
	if err := l.configured(); err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}

	item, err := l.resolve(userID, line)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	newQty := item.Quantity - line.Qty
	if newQty < 0 {
		newQty = 0
	}
	delta := item.Quantity - newQty

	item.Quantity = newQty
	item.GrossTotal, item.VATAmount, item.Profit = l.revalue(item)

	if err := l.items.UpdateStock(item); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	if delta > 0 {
		l.appendMovements([]*entity.InventoryMovement{{
			InventoryItemID: item.ID,
			UserID:          userID,
			MovementType:    entity.MovementOUT,
			ChangeQty:       delta,
			LocationID:      item.LocationID,
			Reason:          reason,
			CreatedAt:       time.Now(),
		}})
	}
	return nil
}

// ListItems returns the owner's items flattened into till lines, with the
// storage location name resolved for display.
func (l *Ledger) ListItems(ctx context.Context, userID string, limit, offset int) ([]entity.Line, error) {
	if err := l.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	items, err := l.items.List(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	locationNames := map[int64]string{}
	if l.locations != nil {
		locations, err := l.locations.List(userID)
		if err == nil {
			for _, loc := range locations {
				locationNames[loc.ID] = loc.Name
			}
		}
	}

	lines := make([]entity.Line, 0, len(items))
	for _, item := range items {
		line := entity.Line{
			ID:              item.ID,
			Barcode:         item.SKU,
			Name:            item.Name,
			Qty:             item.Quantity,
			Price:           item.Price,
			Cost:            item.Cost,
			GrossTotal:      item.GrossTotal,
			VATAmount:       item.VATAmount,
			Profit:          item.Profit,
			Payment:         entity.PaymentCash,
			InventoryItemID: &item.ID,
			LocationID:      item.LocationID,
		}
		if item.LocationID != nil {
			line.LocationName = locationNames[*item.LocationID]
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ListMovements returns ledger entries newest first, for one item when itemID
// is non-zero or across the whole account otherwise.
func (l *Ledger) ListMovements(ctx context.Context, userID string, itemID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	if err := l.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	var movements []*entity.InventoryMovement
	var err error
	if itemID != 0 {
		movements, err = l.movements.ListByItem(itemID, userID, limit, offset)
	} else {
		movements, err = l.movements.ListByUser(userID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

// resolve finds the stocked item a till line refers to: explicit item id
// first, barcode second, nil when neither matches.
func (l *Ledger) resolve(userID string, line entity.Line) (*entity.InventoryItem, error) {
	if line.InventoryItemID != nil {
		item, err := l.items.GetByID(*line.InventoryItemID, userID)
		if err != nil {
			return nil, fmt.Errorf("get item: %w", err)
		}
		return item, nil
	}
	if line.Barcode == "" {
		return nil, nil
	}
	item, err := l.items.GetBySKU(userID, line.Barcode)
	if err != nil {
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return item, nil
}

// revalue recomputes the remaining-stock valuation after a quantity change.
// The VAT share keeps the ratio already recorded on the item; an item with no
// prior gross falls back to the default rate.
func (l *Ledger) revalue(item *entity.InventoryItem) (gross, vat, profit float64) {
	gross = money.Round(item.Price * float64(item.Quantity))
	ratio := 0.0
	if item.GrossTotal > 0 {
		ratio = item.VATAmount / item.GrossTotal
	}
	if ratio > 0 {
		vat = money.Round(gross * ratio)
	} else {
		vat = money.Round(item.Price * float64(item.Quantity) * l.vatRate / 100)
	}
	profit = money.Profit(gross, vat, item.Cost, item.Quantity)
	return gross, vat, profit
}

// valuation prices a fresh batch: gross from the VAT-inclusive price, VAT at
// the default rate over the gross, the rest after cost is profit.
func (l *Ledger) valuation(price, cost float64, qty int) (gross, vat, profit float64) {
	gross = money.Round(price * float64(qty))
	vat = money.Round(gross * l.vatRate / 100)
	profit = money.Profit(gross, vat, cost, qty)
	return gross, vat, profit
}

// appendMovements writes ledger entries after the primary effect has already
// been committed. Failures are logged, never escalated: a stock change is not
// rolled back because its audit trail failed to write.
func (l *Ledger) appendMovements(movements []*entity.InventoryMovement) {
	if len(movements) == 0 {
		return
	}
	if err := l.movements.InsertBatch(movements); err != nil {
		l.log.Warn().
			Err(err).
			Int("movements", len(movements)).
			Str("marker", "movement_log_incomplete").
			Msg("failed to append inventory movements")
	}
}
