package sales

import (
	"github.com/mahalpos/pos-api/internal/application/dto"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/money"
)

// SummarizeSession aggregates a set of till lines into the session totals the
// receipt and summary views consume. A pure function: totals are recomputed
// on demand from the lines, nothing is cached or observed.
func SummarizeSession(lines []entity.Line) dto.SessionSummary {
	summary := dto.SessionSummary{PaymentTotals: map[string]float64{}}
	for _, line := range lines {
		summary.TotalQty += line.Qty
		summary.TotalGross += line.GrossTotal
		summary.TotalVAT += line.VATAmount
		summary.TotalProfit += line.Profit
		summary.PaymentTotals[line.Payment] += line.GrossTotal
	}
	summary.TotalGross = money.Round(summary.TotalGross)
	summary.TotalVAT = money.Round(summary.TotalVAT)
	summary.TotalProfit = money.Round(summary.TotalProfit)
	for payment, gross := range summary.PaymentTotals {
		summary.PaymentTotals[payment] = money.Round(gross)
	}
	return summary
}
