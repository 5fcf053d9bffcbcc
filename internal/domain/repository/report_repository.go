package repository

import (
	"context"
	"time"
)

// PaymentTotal is the gross taken through one payment method in a period.
type PaymentTotal struct {
	Payment    string
	GrossTotal float64
}

// VATPeriodResult is the raw aggregate the store computes over sales_lines for
// one reporting period. The use case rounds and shapes it into the DTO.
type VATPeriodResult struct {
	LineCount   int
	TotalQty    int
	GrossTotal  float64
	VATAmount   float64
	TotalProfit float64
	ByPayment   []PaymentTotal
}

// ReportRepository defines the read-only aggregate queries behind VAT and
// sales reporting. Implementations never modify data.
type ReportRepository interface {
	// VATPeriod sums the owner's sales lines between from and to (inclusive).
	VATPeriod(ctx context.Context, userID string, from, to time.Time) (*VATPeriodResult, error)
}
