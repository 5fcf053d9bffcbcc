// Package reports exposes the read-side aggregates the receipt and report
// consumers work from. Everything here is computed over already-persisted
// sales lines; nothing writes.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/mahalpos/pos-api/internal/application/dto"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/money"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

// VATReportUseCase builds the period VAT report for compliance filing.
type VATReportUseCase struct {
	repo     repository.ReportRepository
	vatRate  float64
	currency string
}

// NewVATReportUseCase builds the use case.
func NewVATReportUseCase(repo repository.ReportRepository, vatRate float64, currency string) *VATReportUseCase {
	return &VATReportUseCase{repo: repo, vatRate: vatRate, currency: currency}
}

// VATReport sums the owner's sales lines between from and to. All monetary
// outputs are rounded exactly the way the receipts were.
func (uc *VATReportUseCase) VATReport(ctx context.Context, userID string, from, to time.Time) (*dto.VATReportResponse, error) {
	if uc.repo == nil {
		return nil, domain.ErrNotConfigured
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	result, err := uc.repo.VATPeriod(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("vat period query: %w", err)
	}

	resp := &dto.VATReportResponse{
		From:        from.Format("2006-01-02"),
		To:          to.Format("2006-01-02"),
		Currency:    uc.currency,
		VATRate:     uc.vatRate,
		LineCount:   result.LineCount,
		TotalQty:    result.TotalQty,
		GrossTotal:  money.Round(result.GrossTotal),
		VATAmount:   money.Round(result.VATAmount),
		TotalProfit: money.Round(result.TotalProfit),
	}
	resp.NetTotal = money.Round(resp.GrossTotal - resp.VATAmount)
	for _, p := range result.ByPayment {
		resp.ByPayment = append(resp.ByPayment, dto.PaymentBreakdown{
			Payment:    p.Payment,
			GrossTotal: money.Round(p.GrossTotal),
		})
	}
	return resp, nil
}
