package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mahalpos/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implements the read-only reporting queries over PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository builds the reporting adapter.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// VATPeriod aggregates the owner's sales lines between from and to
// (inclusive): line count, quantity, gross, VAT and profit totals, plus the
// gross taken through each payment method.
func (r *ReportRepo) VATPeriod(ctx context.Context, userID string, from, to time.Time) (*repository.VATPeriodResult, error) {
	var res repository.VATPeriodResult
	query := `
		SELECT COUNT(*), COALESCE(SUM(qty), 0),
		       COALESCE(SUM(gross_total), 0), COALESCE(SUM(vat_amount), 0), COALESCE(SUM(profit), 0)
		FROM sales_lines
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3`
	err := r.q.QueryRow(ctx, query, userID, from, to).Scan(
		&res.LineCount, &res.TotalQty, &res.GrossTotal, &res.VATAmount, &res.TotalProfit,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate vat period: %w", err)
	}

	byPayment := `
		SELECT payment, COALESCE(SUM(gross_total), 0)
		FROM sales_lines
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY payment ORDER BY payment`
	rows, err := r.q.Query(ctx, byPayment, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate vat period by payment: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pt repository.PaymentTotal
		if err := rows.Scan(&pt.Payment, &pt.GrossTotal); err != nil {
			return nil, fmt.Errorf("scan payment total: %w", err)
		}
		res.ByPayment = append(res.ByPayment, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &res, nil
}
