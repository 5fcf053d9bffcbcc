package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahalpos/pos-api/internal/domain/inventory"
)

func TestMergeBatch_DuplicateSKUsSumQuantities(t *testing.T) {
	rows := []inventory.ImportRow{
		{SKU: "A", Name: "Water", Qty: 2, Price: 1.5},
		{SKU: "B", Name: "Juice", Qty: 1, Price: 4},
		{SKU: "A", Name: "Water", Qty: 3, Price: 1.5},
	}
	merged := inventory.MergeBatch(rows)
	require.Len(t, merged, 2)
	assert.Equal(t, "A", merged[0].SKU)
	assert.Equal(t, 5, merged[0].Qty)
	assert.Equal(t, "B", merged[1].SKU)
	assert.Equal(t, 1, merged[1].Qty)
}

func TestMergeBatch_DropsInvalidRows(t *testing.T) {
	rows := []inventory.ImportRow{
		{SKU: "", Name: "No barcode", Qty: 1},
		{SKU: "X", Name: "", Qty: 1},
		{SKU: "Y", Name: "Zero qty", Qty: 0},
		{SKU: "Z", Name: "Negative", Qty: -3},
		{SKU: "OK", Name: "Kept", Qty: 1},
	}
	merged := inventory.MergeBatch(rows)
	require.Len(t, merged, 1)
	assert.Equal(t, "OK", merged[0].SKU)
}

func TestMergeBatch_LastWriteWinsForFields(t *testing.T) {
	loc1, loc2 := int64(1), int64(2)
	rows := []inventory.ImportRow{
		{SKU: "A", Name: "Old name", Qty: 1, Unit: "pc", Price: 10, Cost: 6, LocationID: &loc1},
		{SKU: "A", Name: "New name", Qty: 1, Price: 12, LocationID: &loc2},
		{SKU: "A", Name: "New name", Qty: 1, Price: 0, Cost: 0}, // zero price/cost keep previous
	}
	merged := inventory.MergeBatch(rows)
	require.Len(t, merged, 1)
	assert.Equal(t, "New name", merged[0].Name)
	assert.Equal(t, "pc", merged[0].Unit) // empty unit keeps previous
	assert.Equal(t, 3, merged[0].Qty)
	assert.Equal(t, 12.0, merged[0].Price)
	assert.Equal(t, 6.0, merged[0].Cost)
	require.NotNil(t, merged[0].LocationID)
	assert.Equal(t, loc2, *merged[0].LocationID)
}

func TestMergeBatch_KeepsFirstSeenOrder(t *testing.T) {
	rows := []inventory.ImportRow{
		{SKU: "C", Name: "c", Qty: 1},
		{SKU: "A", Name: "a", Qty: 1},
		{SKU: "B", Name: "b", Qty: 1},
		{SKU: "A", Name: "a", Qty: 1},
	}
	merged := inventory.MergeBatch(rows)
	require.Len(t, merged, 3)
	assert.Equal(t, "C", merged[0].SKU)
	assert.Equal(t, "A", merged[1].SKU)
	assert.Equal(t, "B", merged[2].SKU)
}

func TestMergeBatch_Empty(t *testing.T) {
	assert.Empty(t, inventory.MergeBatch(nil))
}
