package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

var (
	_ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)
	_ repository.SalesLineRepository  = (*SalesLineRepo)(nil)
)

// SalesOrderRepo implements the sales order header port over PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository builds the persistence adapter for order headers.
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Insert persists the header and writes the generated ID back into it.
func (r *SalesOrderRepo) Insert(order *entity.SalesOrder) error {
	query := `
		INSERT INTO sales (user_id, reference, status, customer_name, customer_phone, payment_method, subtotal, vat_amount, total, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		order.UserID, order.Reference, order.Status, order.CustomerName, order.CustomerPhone,
		order.PaymentMethod, order.Subtotal, order.VATAmount, order.Total, order.OrderDate,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID fetches one order header scoped by owner.
func (r *SalesOrderRepo) GetByID(id int64, userID string) (*entity.SalesOrder, error) {
	query := `
		SELECT id, user_id, reference, status, customer_name, customer_phone, payment_method, subtotal, vat_amount, total, order_date
		FROM sales WHERE id = $1 AND user_id = $2`
	var o entity.SalesOrder
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&o.ID, &o.UserID, &o.Reference, &o.Status, &o.CustomerName, &o.CustomerPhone,
		&o.PaymentMethod, &o.Subtotal, &o.VATAmount, &o.Total, &o.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return &o, nil
}

// List pages through the owner's orders, newest first.
func (r *SalesOrderRepo) List(userID string, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `
		SELECT id, user_id, reference, status, customer_name, customer_phone, payment_method, subtotal, vat_amount, total, order_date
		FROM sales WHERE user_id = $1 ORDER BY order_date DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesOrder
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.ID, &o.UserID, &o.Reference, &o.Status, &o.CustomerName, &o.CustomerPhone,
			&o.PaymentMethod, &o.Subtotal, &o.VATAmount, &o.Total, &o.OrderDate); err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Delete removes one order header. Used only to undo a partially written sale.
func (r *SalesOrderRepo) Delete(id int64, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete sales order: %w", err)
	}
	return nil
}

// SalesLineRepo implements the sales line port over PostgreSQL.
type SalesLineRepo struct {
	q Querier
}

// NewSalesLineRepository builds the persistence adapter for order lines.
func NewSalesLineRepository(q Querier) *SalesLineRepo {
	return &SalesLineRepo{q: q}
}

// InsertBatch appends all lines of one sale in a single round trip.
func (r *SalesLineRepo) InsertBatch(lines []*entity.SalesLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO sales_lines (sale_id, user_id, inventory_item_id, barcode, name, qty, price, cost, gross_total, vat_amount, profit, payment, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.SaleID, l.UserID, l.InventoryItemID, l.Barcode, l.Name, l.Qty,
			l.Price, l.Cost, l.GrossTotal, l.VATAmount, l.Profit, l.Payment, l.Phone,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for _, l := range lines {
		if err := results.QueryRow().Scan(&l.ID); err != nil {
			return fmt.Errorf("insert sales line: %w", err)
		}
	}
	return nil
}

// ListBySale fetches all lines of one sale in insertion order.
func (r *SalesLineRepo) ListBySale(saleID int64, userID string) ([]*entity.SalesLine, error) {
	query := `
		SELECT id, sale_id, user_id, inventory_item_id, barcode, name, qty, price, cost, gross_total, vat_amount, profit, payment, phone, created_at
		FROM sales_lines WHERE sale_id = $1 AND user_id = $2 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID, userID)
	if err != nil {
		return nil, fmt.Errorf("list sales lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesLine
	for rows.Next() {
		var l entity.SalesLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.UserID, &l.InventoryItemID, &l.Barcode, &l.Name, &l.Qty,
			&l.Price, &l.Cost, &l.GrossTotal, &l.VATAmount, &l.Profit, &l.Payment, &l.Phone, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteBySale removes all lines of one sale. Used only to undo a partially
// written sale.
func (r *SalesLineRepo) DeleteBySale(saleID int64, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sales_lines WHERE sale_id = $1 AND user_id = $2`, saleID, userID)
	if err != nil {
		return fmt.Errorf("delete sales lines: %w", err)
	}
	return nil
}
