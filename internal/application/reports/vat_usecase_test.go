package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahalpos/pos-api/internal/application/reports"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

type fakeReportRepo struct {
	result *repository.VATPeriodResult
}

func (r *fakeReportRepo) VATPeriod(ctx context.Context, userID string, from, to time.Time) (*repository.VATPeriodResult, error) {
	return r.result, nil
}

func TestVATReport_RoundsAndDerivesNet(t *testing.T) {
	repo := &fakeReportRepo{result: &repository.VATPeriodResult{
		LineCount:   3,
		TotalQty:    7,
		GrossTotal:  115.008, // raw store sum, not yet rounded
		VATAmount:   15.0004,
		TotalProfit: 40.0,
		ByPayment: []repository.PaymentTotal{
			{Payment: entity.PaymentCash, GrossTotal: 57.5},
			{Payment: entity.PaymentMada, GrossTotal: 57.508},
		},
	}}
	uc := reports.NewVATReportUseCase(repo, 15, "SAR")

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	report, err := uc.VATReport(context.Background(), "user-1", from, to)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", report.From)
	assert.Equal(t, "2026-03-31", report.To)
	assert.Equal(t, "SAR", report.Currency)
	assert.Equal(t, 15.0, report.VATRate)
	assert.Equal(t, 3, report.LineCount)
	assert.Equal(t, 7, report.TotalQty)
	assert.Equal(t, 115.01, report.GrossTotal)
	assert.Equal(t, 15.00, report.VATAmount)
	assert.Equal(t, 100.01, report.NetTotal) // gross − vat after rounding
	assert.Equal(t, 40.00, report.TotalProfit)
	require.Len(t, report.ByPayment, 2)
	assert.Equal(t, 57.51, report.ByPayment[1].GrossTotal)
}

func TestVATReport_ToBeforeFromRejected(t *testing.T) {
	uc := reports.NewVATReportUseCase(&fakeReportRepo{}, 15, "SAR")
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.VATReport(context.Background(), "user-1", from, from.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVATReport_EmptyUserIsUnauthorized(t *testing.T) {
	uc := reports.NewVATReportUseCase(&fakeReportRepo{}, 15, "SAR")
	_, err := uc.VATReport(context.Background(), "", time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVATReport_NotConfigured(t *testing.T) {
	uc := reports.NewVATReportUseCase(nil, 15, "SAR")
	_, err := uc.VATReport(context.Background(), "user-1", time.Now(), time.Now())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
