// Package inventory holds pure domain services for the stock ledger.
package inventory

// ImportRow is one raw row from manual entry or a spreadsheet parse, before
// deduplication. Quantity has already been coerced to an integer; rows with a
// non-finite source value never reach the aggregator.
type ImportRow struct {
	SKU        string
	Name       string
	Qty        int
	Unit       string
	Price      float64
	Cost       float64
	LocationID *int64
}

// MergeBatch deduplicates an import batch by SKU so a batch can never create
// two rows for one product. Rows missing a SKU or a name, or with a quantity
// of zero or less, are silently dropped. Duplicate SKUs merge: quantities sum,
// name/unit/price/cost take the last non-empty value seen, and the location
// takes the last explicit one (last write wins).
//
// The result keeps first-seen SKU order so upsert batches are deterministic.
func MergeBatch(rows []ImportRow) []ImportRow {
	merged := make(map[string]*ImportRow, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		if row.SKU == "" || row.Name == "" || row.Qty <= 0 {
			continue
		}
		existing, ok := merged[row.SKU]
		if !ok {
			r := row
			merged[row.SKU] = &r
			order = append(order, row.SKU)
			continue
		}
		existing.Qty += row.Qty
		if row.Name != "" {
			existing.Name = row.Name
		}
		if row.Unit != "" {
			existing.Unit = row.Unit
		}
		if row.Price != 0 {
			existing.Price = row.Price
		}
		if row.Cost != 0 {
			existing.Cost = row.Cost
		}
		if row.LocationID != nil {
			existing.LocationID = row.LocationID
		}
	}

	out := make([]ImportRow, 0, len(order))
	for _, sku := range order {
		out = append(out, *merged[sku])
	}
	return out
}
