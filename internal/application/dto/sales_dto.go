package dto

import "github.com/mahalpos/pos-api/internal/domain/money"

// ReceiptLineInput is one till line in a receipt or order submission. Monetary
// totals are derived server-side from price, qty and the VAT rate fixed at
// order time.
type ReceiptLineInput struct {
	Barcode         string  `json:"barcode,omitempty"`
	Name            string  `json:"name"`
	Qty             int     `json:"qty"`
	Price           float64 `json:"price"`
	Cost            float64 `json:"cost,omitempty"`
	Payment         string  `json:"payment,omitempty"`
	Phone           string  `json:"phone,omitempty"`
	InventoryItemID *int64  `json:"inventory_item_id,omitempty"`
}

// TenderInput weights a payment method for split-tender proration.
type TenderInput struct {
	Method string  `json:"method"`
	Weight float64 `json:"weight"`
}

// RecordReceiptRequest is the body for POST /api/sales/receipts.
type RecordReceiptRequest struct {
	Lines         []ReceiptLineInput `json:"lines"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Tender        []TenderInput      `json:"tender,omitempty"`
}

// ReceiptResponse identifies the persisted order and its totals. TenderSplit
// is present only when the request carried tender weights; its parts always
// sum exactly to Total.
type ReceiptResponse struct {
	ID          int64              `json:"id"`
	Reference   string             `json:"reference"`
	Subtotal    float64            `json:"subtotal"`
	VATAmount   float64            `json:"vat_amount"`
	Total       float64            `json:"total"`
	TenderSplit []money.Allocation `json:"tender_split,omitempty"`
}

// CreateOrderRequest is the body for POST /api/sales/orders (the strict path
// that validates stock before committing).
type CreateOrderRequest struct {
	Lines         []ReceiptLineInput `json:"lines"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method,omitempty"`
}

// OrderLineResponse is one persisted order line.
type OrderLineResponse struct {
	ID              int64   `json:"id"`
	InventoryItemID *int64  `json:"inventory_item_id,omitempty"`
	Barcode         string  `json:"barcode,omitempty"`
	Name            string  `json:"name"`
	Qty             int     `json:"qty"`
	Price           float64 `json:"price"`
	GrossTotal      float64 `json:"gross_total"`
	VATAmount       float64 `json:"vat_amount"`
	Profit          float64 `json:"profit"`
}

// OrderResponse is a persisted sales order with its lines.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Reference     string              `json:"reference"`
	Status        string              `json:"status"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Subtotal      float64             `json:"subtotal"`
	VATAmount     float64             `json:"vat_amount"`
	Total         float64             `json:"total"`
	OrderDate     string              `json:"order_date"`
	Lines         []OrderLineResponse `json:"lines,omitempty"`
}

// SessionSummary aggregates a set of till lines for display and export.
type SessionSummary struct {
	TotalQty      int                `json:"total_qty"`
	TotalGross    float64            `json:"total_gross"`
	TotalVAT      float64            `json:"total_vat"`
	TotalProfit   float64            `json:"total_profit"`
	PaymentTotals map[string]float64 `json:"payment_totals"`
}
