package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/mahalpos/pos-api/internal/application/inventory"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	domaininv "github.com/mahalpos/pos-api/internal/domain/inventory"
	"github.com/mahalpos/pos-api/pkg/logger"
)

const testUser = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items  map[int64]*entity.InventoryItem
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[int64]*entity.InventoryItem{}, nextID: 1}
}

func (r *fakeItemRepo) GetByID(id int64, userID string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(userID, sku string) (*entity.InventoryItem, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) ListBySKUs(userID string, skus []string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, sku := range skus {
		if it, _ := r.GetBySKU(userID, sku); it != nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) List(userID string, limit, offset int) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for id := int64(1); id < r.nextID; id++ {
		if it, ok := r.items[id]; ok && it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Insert(item *entity.InventoryItem) error {
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpsertBatch(items []*entity.InventoryItem) error {
	for _, item := range items {
		if existing, _ := r.GetBySKU(item.UserID, item.SKU); existing != nil {
			item.ID = existing.ID
			cp := *item
			r.items[item.ID] = &cp
			continue
		}
		if err := r.Insert(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeItemRepo) UpdateStock(item *entity.InventoryItem) error {
	if existing, ok := r.items[item.ID]; ok && existing.UserID == item.UserID {
		cp := *item
		r.items[item.ID] = &cp
	}
	return nil
}

func (r *fakeItemRepo) Delete(id int64, userID string) error {
	if it, ok := r.items[id]; ok && it.UserID == userID {
		delete(r.items, id)
	}
	return nil
}

type fakeMovementRepo struct {
	movements  []*entity.InventoryMovement
	failInsert error
}

func (r *fakeMovementRepo) InsertBatch(movements []*entity.InventoryMovement) error {
	if r.failInsert != nil {
		return r.failInsert
	}
	r.movements = append(r.movements, movements...)
	return nil
}

func (r *fakeMovementRepo) ListByItem(itemID int64, userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.InventoryItemID == itemID && m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByUser(userID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// signedSum folds the movements into a net quantity change.
func (r *fakeMovementRepo) signedSum(itemID int64) int {
	sum := 0
	for _, m := range r.movements {
		if m.InventoryItemID != itemID {
			continue
		}
		if m.MovementType == entity.MovementIN {
			sum += m.ChangeQty
		} else {
			sum -= m.ChangeQty
		}
	}
	return sum
}

type fakeLocationRepo struct {
	locations []*entity.StorageLocation
}

func (r *fakeLocationRepo) List(userID string) ([]*entity.StorageLocation, error) {
	var out []*entity.StorageLocation
	for _, loc := range r.locations {
		if loc.UserID == userID {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) GetByID(id int64, userID string) (*entity.StorageLocation, error) {
	for _, loc := range r.locations {
		if loc.ID == id && loc.UserID == userID {
			return loc, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) Insert(location *entity.StorageLocation) error {
	location.ID = int64(len(r.locations) + 1)
	r.locations = append(r.locations, location)
	return nil
}

func newTestLedger() (*appinv.Ledger, *fakeItemRepo, *fakeMovementRepo) {
	items := newFakeItemRepo()
	movements := &fakeMovementRepo{}
	ledger := appinv.NewLedger(items, movements, &fakeLocationRepo{}, 15, logger.Nop())
	return ledger, items, movements
}

func seedItem(t *testing.T, items *fakeItemRepo, sku string, qty int, price, cost float64) *entity.InventoryItem {
	t.Helper()
	item := &entity.InventoryItem{
		UserID: testUser, SKU: sku, Name: "Item " + sku,
		Quantity: qty, Price: price, Cost: cost,
	}
	require.NoError(t, items.Insert(item))
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportBatch
// ──────────────────────────────────────────────────────────────────────────────

func TestImportBatch_CreatesItemsAndMovements(t *testing.T) {
	ledger, items, movements := newTestLedger()

	imported, err := ledger.ImportBatch(context.Background(), testUser, []domaininv.ImportRow{
		{SKU: "A", Name: "Water", Qty: 2, Price: 11.5, Cost: 6},
		{SKU: "B", Name: "Juice", Qty: 4, Price: 23, Cost: 12},
		{SKU: "A", Name: "Water", Qty: 3, Price: 11.5, Cost: 6},
	}, appinv.ReasonExcelImport)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	a, err := items.GetBySKU(testUser, "A")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, 5, a.Quantity)
	assert.Equal(t, 57.50, a.GrossTotal) // 5 × 11.5
	assert.Equal(t, 8.63, a.VATAmount)   // 15% of gross
	assert.Equal(t, 18.87, a.Profit)     // gross − vat − 5 × 6

	require.Len(t, movements.movements, 2)
	assert.Equal(t, entity.MovementIN, movements.movements[0].MovementType)
	assert.Equal(t, 5, movements.movements[0].ChangeQty)
	assert.Equal(t, appinv.ReasonExcelImport, movements.movements[0].Reason)
}

func TestImportBatch_ExistingItemAccumulates(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 5, 100, 60)

	imported, err := ledger.ImportBatch(context.Background(), testUser, []domaininv.ImportRow{
		{SKU: "A", Name: "Item A", Qty: 3}, // no price/cost: keep existing
	}, appinv.ReasonManualAddition)
	require.NoError(t, err)
	assert.Equal(t, 1, imported)

	got, err := items.GetByID(seeded.ID, testUser)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 100.0, got.Price)
	assert.Equal(t, 60.0, got.Cost)

	// The movement records the delta added, not the new total.
	require.Len(t, movements.movements, 1)
	assert.Equal(t, 3, movements.movements[0].ChangeQty)
}

func TestImportBatch_EmptyAfterMergeIsNoOp(t *testing.T) {
	ledger, _, movements := newTestLedger()
	imported, err := ledger.ImportBatch(context.Background(), testUser, []domaininv.ImportRow{
		{SKU: "", Name: "no sku", Qty: 1},
		{SKU: "X", Name: "", Qty: 1},
	}, appinv.ReasonExcelImport)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Empty(t, movements.movements)
}

func TestImportBatch_EmptyUserIsUnauthorized(t *testing.T) {
	ledger, _, _ := newTestLedger()
	_, err := ledger.ImportBatch(context.Background(), "", []domaininv.ImportRow{
		{SKU: "A", Name: "a", Qty: 1},
	}, appinv.ReasonExcelImport)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddToStorage / Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToStorage_IncreasesAndAppendsMovement(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 5, 100, 60)

	require.NoError(t, ledger.AddToStorage(context.Background(), testUser, seeded.ID, 3, nil))

	got, _ := items.GetByID(seeded.ID, testUser)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, 800.00, got.GrossTotal)

	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementIN, movements.movements[0].MovementType)
	assert.Equal(t, 3, movements.movements[0].ChangeQty)
	assert.Equal(t, appinv.ReasonManualAddition, movements.movements[0].Reason)
}

func TestAddToStorage_RejectsNonPositiveQuantity(t *testing.T) {
	ledger, items, _ := newTestLedger()
	seeded := seedItem(t, items, "A", 5, 100, 60)

	assert.ErrorIs(t, ledger.AddToStorage(context.Background(), testUser, seeded.ID, 0, nil), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.AddToStorage(context.Background(), testUser, seeded.ID, -1, nil), domain.ErrInvalidQuantity)
}

func TestAddToStorage_MissingItem(t *testing.T) {
	ledger, _, _ := newTestLedger()
	assert.ErrorIs(t, ledger.AddToStorage(context.Background(), testUser, 99, 1, nil), domain.ErrItemNotFound)
}

func TestRestock_RecordsGivenReason(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 2, 100, 60)

	require.NoError(t, ledger.Restock(context.Background(), testUser, seeded.ID, 2, "Reversal SO-20260901-XXXX"))

	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementIN, movements.movements[0].MovementType)
	assert.Equal(t, "Reversal SO-20260901-XXXX", movements.movements[0].Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// DecrementForSale
// ──────────────────────────────────────────────────────────────────────────────

func TestDecrementForSale_RevaluesRemainingStock(t *testing.T) {
	ledger, items, _ := newTestLedger()
	item := &entity.InventoryItem{
		UserID: testUser, SKU: "A", Name: "Item A",
		Quantity: 5, Price: 100, Cost: 60,
		GrossTotal: 500, VATAmount: 65, Profit: 135,
	}
	require.NoError(t, items.Insert(item))

	err := ledger.DecrementForSale(context.Background(), testUser, entity.Line{
		Barcode: "A", Qty: 2, Price: 100,
	}, "Sale SO-1")
	require.NoError(t, err)

	got, _ := items.GetByID(item.ID, testUser)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 300.00, got.GrossTotal)
	assert.Equal(t, 39.00, got.VATAmount) // keeps the recorded 65/500 ratio
	assert.Equal(t, 81.00, got.Profit)    // 300 − 39 − 3 × 60
}

func TestDecrementForSale_ClampsAtZeroAndRecordsActualDelta(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 3, 100, 60)

	err := ledger.DecrementForSale(context.Background(), testUser, entity.Line{
		Barcode: "A", Qty: 10, Price: 100,
	}, "Sale SO-2")
	require.NoError(t, err)

	got, _ := items.GetByID(seeded.ID, testUser)
	assert.Equal(t, 0, got.Quantity)

	// The OUT movement carries the quantity actually removed, so summing the
	// signed movements still reconciles with the stored quantity.
	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementOUT, movements.movements[0].MovementType)
	assert.Equal(t, 3, movements.movements[0].ChangeQty)
	assert.Equal(t, got.Quantity, 3+movements.signedSum(seeded.ID)) // initial + net change
}

func TestDecrementForSale_UnmatchedLineIsNoOp(t *testing.T) {
	ledger, _, movements := newTestLedger()

	err := ledger.DecrementForSale(context.Background(), testUser, entity.Line{
		Barcode: "missing", Qty: 2, Price: 10,
	}, "Sale SO-3")
	require.NoError(t, err)
	assert.Empty(t, movements.movements)

	// A line with no barcode and no item id resolves to nothing.
	err = ledger.DecrementForSale(context.Background(), testUser, entity.Line{
		Name: "free-form", Qty: 1, Price: 5,
	}, "Sale SO-3")
	require.NoError(t, err)
}

func TestDecrementForSale_MovementFailureDoesNotEscalate(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 5, 100, 60)
	movements.failInsert = errors.New("store rejected the append")

	err := ledger.DecrementForSale(context.Background(), testUser, entity.Line{
		Barcode: "A", Qty: 2, Price: 100,
	}, "Sale SO-4")
	require.NoError(t, err)

	// The stock write stands even though the audit append failed.
	got, _ := items.GetByID(seeded.ID, testUser)
	assert.Equal(t, 3, got.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveItem / reconciliation
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveItem_DeletesAndAppendsOutMovement(t *testing.T) {
	ledger, items, movements := newTestLedger()
	seeded := seedItem(t, items, "A", 4, 100, 60)

	require.NoError(t, ledger.RemoveItem(context.Background(), testUser, seeded.ID))

	got, _ := items.GetByID(seeded.ID, testUser)
	assert.Nil(t, got)
	require.Len(t, movements.movements, 1)
	assert.Equal(t, entity.MovementOUT, movements.movements[0].MovementType)
	assert.Equal(t, 4, movements.movements[0].ChangeQty)
	assert.Equal(t, appinv.ReasonManualRemoval, movements.movements[0].Reason)
}

func TestRemoveItem_MissingIsNoOp(t *testing.T) {
	ledger, _, movements := newTestLedger()
	require.NoError(t, ledger.RemoveItem(context.Background(), testUser, 42))
	assert.Empty(t, movements.movements)
}

func TestMovements_ReconcileWithQuantity(t *testing.T) {
	ledger, items, movements := newTestLedger()
	ctx := context.Background()

	_, err := ledger.ImportBatch(ctx, testUser, []domaininv.ImportRow{
		{SKU: "A", Name: "Item A", Qty: 10, Price: 50, Cost: 20},
	}, appinv.ReasonExcelImport)
	require.NoError(t, err)
	item, _ := items.GetBySKU(testUser, "A")
	require.NotNil(t, item)

	require.NoError(t, ledger.AddToStorage(ctx, testUser, item.ID, 5, nil))
	require.NoError(t, ledger.DecrementForSale(ctx, testUser, entity.Line{Barcode: "A", Qty: 7, Price: 50}, "Sale SO-5"))
	require.NoError(t, ledger.DecrementForSale(ctx, testUser, entity.Line{Barcode: "A", Qty: 99, Price: 50}, "Sale SO-6")) // clamps

	got, _ := items.GetByID(item.ID, testUser)
	assert.Equal(t, 0, got.Quantity)
	assert.Equal(t, 0, movements.signedSum(item.ID))
}

func TestLedger_NotConfigured(t *testing.T) {
	ledger := appinv.NewLedger(nil, nil, nil, 15, logger.Nop())
	_, err := ledger.ListItems(context.Background(), testUser, 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.ErrorIs(t, ledger.AddToStorage(context.Background(), testUser, 1, 1, nil), domain.ErrNotConfigured)
}
