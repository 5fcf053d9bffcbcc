package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mahalpos/pos-api/internal/application/sales"
	"github.com/mahalpos/pos-api/internal/domain/entity"
)

func TestSummarizeSession_AggregatesByPayment(t *testing.T) {
	summary := sales.SummarizeSession([]entity.Line{
		{Qty: 2, GrossTotal: 23.00, VATAmount: 3.00, Profit: 8.00, Payment: entity.PaymentCash},
		{Qty: 1, GrossTotal: 57.50, VATAmount: 7.50, Profit: 20.00, Payment: entity.PaymentMada},
		{Qty: 3, GrossTotal: 34.50, VATAmount: 4.50, Profit: 12.00, Payment: entity.PaymentCash},
	})

	assert.Equal(t, 6, summary.TotalQty)
	assert.Equal(t, 115.00, summary.TotalGross)
	assert.Equal(t, 15.00, summary.TotalVAT)
	assert.Equal(t, 40.00, summary.TotalProfit)
	assert.Equal(t, 57.50, summary.PaymentTotals[entity.PaymentCash])
	assert.Equal(t, 57.50, summary.PaymentTotals[entity.PaymentMada])
}

func TestSummarizeSession_Empty(t *testing.T) {
	summary := sales.SummarizeSession(nil)
	assert.Equal(t, 0, summary.TotalQty)
	assert.Equal(t, 0.00, summary.TotalGross)
	assert.Empty(t, summary.PaymentTotals)
}

func TestSummarizeSession_RoundsAccumulatedTotals(t *testing.T) {
	// 0.1 + 0.2 accumulates binary error; totals come back rounded.
	summary := sales.SummarizeSession([]entity.Line{
		{Qty: 1, GrossTotal: 0.1, Payment: entity.PaymentCash},
		{Qty: 1, GrossTotal: 0.2, Payment: entity.PaymentCash},
	})
	assert.Equal(t, 0.30, summary.TotalGross)
	assert.Equal(t, 0.30, summary.PaymentTotals[entity.PaymentCash])
}
