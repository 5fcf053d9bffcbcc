package dto

// PaymentBreakdown is the gross taken through one payment method.
type PaymentBreakdown struct {
	Payment    string  `json:"payment"`
	GrossTotal float64 `json:"gross_total"`
}

// VATReportResponse is the compliance report for one period. All monetary
// fields are rounded to 2 decimals; Currency is fixed per deployment (SAR).
type VATReportResponse struct {
	From        string             `json:"from"`
	To          string             `json:"to"`
	Currency    string             `json:"currency"`
	VATRate     float64            `json:"vat_rate"`
	LineCount   int                `json:"line_count"`
	TotalQty    int                `json:"total_qty"`
	GrossTotal  float64            `json:"gross_total"`
	VATAmount   float64            `json:"vat_amount"`
	NetTotal    float64            `json:"net_total"`
	TotalProfit float64            `json:"total_profit"`
	ByPayment   []PaymentBreakdown `json:"by_payment"`
}
