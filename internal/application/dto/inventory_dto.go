package dto

// ProductInput is one product row submitted manually or parsed from a
// spreadsheet. Totals are computed server-side; the client only sends the raw
// figures.
type ProductInput struct {
	Barcode    string  `json:"barcode"`
	Name       string  `json:"name"`
	Qty        int     `json:"qty"`
	Unit       string  `json:"unit,omitempty"`
	Price      float64 `json:"price"`
	Cost       float64 `json:"cost"`
	LocationID *int64  `json:"location_id,omitempty"`
}

// AddProductsRequest is the body for POST /api/inventory/items.
type AddProductsRequest struct {
	Products   []ProductInput `json:"products"`
	LocationID *int64         `json:"location_id,omitempty"` // fallback for rows without one
	Reason     string         `json:"reason,omitempty"`
}

// AddProductsResponse reports how many distinct SKUs the batch touched.
type AddProductsResponse struct {
	Imported int `json:"imported"`
}

// AddStockRequest is the body for POST /api/inventory/items/:id/add-stock.
type AddStockRequest struct {
	Quantity   int    `json:"quantity"`
	LocationID *int64 `json:"location_id,omitempty"`
}

// MovementResponse is one ledger entry as exposed to clients.
type MovementResponse struct {
	ID              int64  `json:"id"`
	InventoryItemID int64  `json:"inventory_item_id"`
	MovementType    string `json:"movement_type"`
	ChangeQty       int    `json:"change_qty"`
	LocationID      *int64 `json:"location_id,omitempty"`
	Reason          string `json:"reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// StorageLocationRequest is the body for POST /api/storage-locations.
type StorageLocationRequest struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
}

// StorageLocationResponse is one location as exposed to clients.
type StorageLocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Address string `json:"address,omitempty"`
}
