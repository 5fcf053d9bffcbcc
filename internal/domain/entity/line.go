package entity

// Payment methods accepted at the till.
const (
	PaymentCash      = "Cash"
	PaymentMada      = "Mada"
	PaymentCredit    = "Credit Card"
	PaymentOnAccount = "On Account"
)

// Line is the flattened unit the till and the core exchange: a sale or storage
// row with its computed totals and optional linkage fields. All monetary fields
// are pre-rounded to 2 decimals.
type Line struct {
	ID              int64   `json:"id"`
	Barcode         string  `json:"barcode"`
	Name            string  `json:"name"`
	Qty             int     `json:"qty"`
	Price           float64 `json:"price"`
	Cost            float64 `json:"cost"`
	GrossTotal      float64 `json:"gross_total"`
	VATAmount       float64 `json:"vat_amount"`
	Profit          float64 `json:"profit"`
	Payment         string  `json:"payment"`
	Phone           string  `json:"phone"`
	InventoryItemID *int64  `json:"inventory_item_id,omitempty"`
	LocationID      *int64  `json:"location_id,omitempty"`
	LocationName    string  `json:"location_name,omitempty"`
	SaleID          *int64  `json:"sale_id,omitempty"`
}
