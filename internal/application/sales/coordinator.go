package sales

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/mahalpos/pos-api/internal/application/dto"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/money"
	"github.com/mahalpos/pos-api/internal/domain/repository"
	"github.com/mahalpos/pos-api/pkg/logger"
)

// Coordinator turns a submitted set of till lines into a durable sales order
// with its lines while keeping the inventory ledger consistent. The store has
// no multi-statement atomicity, so partial failure is handled by compensating
// the completed steps in reverse order (see saga).
type Coordinator struct {
	orders  repository.SalesOrderRepository
	lines   repository.SalesLineRepository
	items   repository.InventoryItemRepository // read-only: stock validation
	ledger  StockLedger
	vatRate float64
	log     *logger.Logger
}

// NewCoordinator builds the coordinator.
func NewCoordinator(
	orders repository.SalesOrderRepository,
	lines repository.SalesLineRepository,
	items repository.InventoryItemRepository,
	ledger StockLedger,
	vatRate float64,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		orders:  orders,
		lines:   lines,
		items:   items,
		ledger:  ledger,
		vatRate: vatRate,
		log:     log,
	}
}

func (c *Coordinator) configured() error {
	if c.orders == nil || c.lines == nil {
		return domain.ErrNotConfigured
	}
	return nil
}

// RecordReceipt persists a receipt: header first, then all lines in one batch,
// then the stock decrements through the ledger. An empty line set is a no-op
// returning nil, not an error. When line insertion fails after the header was
// created, the header is deleted again and the original error re-raised.
// Stock decrements clamp at zero and never fail a receipt that is already
// durable.
func (c *Coordinator) RecordReceipt(ctx context.Context, userID string, in dto.RecordReceiptRequest) (*dto.ReceiptResponse, error) {
	if len(in.Lines) == 0 {
		return nil, nil
	}
	if err := c.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	for _, line := range in.Lines {
		if line.Qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	now := time.Now()
	lines, subtotal, vatTotal, total := c.buildLines(userID, in.Lines, now)

	order := &entity.SalesOrder{
		UserID:        userID,
		Reference:     newReference(now),
		Status:        entity.OrderStatusCompleted,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		PaymentMethod: paymentMethod(in.PaymentMethod, in.Lines),
		Subtotal:      subtotal,
		VATAmount:     vatTotal,
		Total:         total,
		OrderDate:     now,
	}
	if err := c.orders.Insert(order); err != nil {
		return nil, fmt.Errorf("insert sales order: %w", err)
	}

	for _, line := range lines {
		line.SaleID = order.ID
	}
	if err := c.lines.InsertBatch(lines); err != nil {
		if delErr := c.orders.Delete(order.ID, userID); delErr != nil {
			c.log.Warn().
				Err(delErr).
				Int64("order_id", order.ID).
				Str("marker", "compensation_failed").
				Msg("failed to delete order header after line insert failure")
		}
		return nil, fmt.Errorf("insert sales lines: %w", err)
	}

	reason := "Sale " + order.Reference
	if c.ledger != nil {
		for _, line := range lines {
			if err := c.ledger.DecrementForSale(ctx, userID, toTillLine(line), reason); err != nil {
				return nil, err
			}
		}
	}

	resp := &dto.ReceiptResponse{
		ID:        order.ID,
		Reference: order.Reference,
		Subtotal:  order.Subtotal,
		VATAmount: order.VATAmount,
		Total:     order.Total,
	}
	if len(in.Tender) > 0 {
		weights := make([]money.Weight, 0, len(in.Tender))
		for _, t := range in.Tender {
			weights = append(weights, money.Weight{Label: t.Method, Weight: t.Weight})
		}
		resp.TenderSplit = money.ProportionalSplit(order.Total, weights)
	}
	return resp, nil
}

// CreateSalesOrder is the strict variant: every line linked to tracked stock
// is validated against the currently available quantity (decremented in
// memory across the batch, so duplicate SKUs validate cumulatively) before
// anything is written. Then header, lines and stock decrements run under a
// saga that undoes completed steps in reverse order on failure. Stock undo
// appends an opposite-direction movement rather than erasing history.
func (c *Coordinator) CreateSalesOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.Qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	// Read-check phase. No lock or row version protects the gap between this
	// read and the writes below; two concurrent orders can both pass. The
	// ledger still clamps at zero, so this is a documented race, not a
	// corruption path.
	available := map[int64]int{}
	resolved := make([]*entity.InventoryItem, len(in.Lines))
	for i, line := range in.Lines {
		item, err := c.resolveItem(userID, line)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue // free-form line, no tracked stock
		}
		resolved[i] = item
		if _, ok := available[item.ID]; !ok {
			available[item.ID] = item.Quantity
		}
		if line.Qty > available[item.ID] {
			return nil, domain.ErrInsufficientQuantity
		}
		available[item.ID] -= line.Qty
	}

	now := time.Now()
	lines, subtotal, vatTotal, total := c.buildLines(userID, in.Lines, now)
	for i, item := range resolved {
		if item != nil {
			id := item.ID
			lines[i].InventoryItemID = &id
		}
	}

	order := &entity.SalesOrder{
		UserID:        userID,
		Reference:     newReference(now),
		Status:        entity.OrderStatusCompleted,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		PaymentMethod: paymentMethod(in.PaymentMethod, in.Lines),
		Subtotal:      subtotal,
		VATAmount:     vatTotal,
		Total:         total,
		OrderDate:     now,
	}

	sg := newSaga(c.log)

	if err := c.orders.Insert(order); err != nil {
		return nil, fmt.Errorf("insert sales order: %w", err)
	}
	sg.completed("insert order header", func() error {
		return c.orders.Delete(order.ID, userID)
	})

	for _, line := range lines {
		line.SaleID = order.ID
	}
	if err := c.lines.InsertBatch(lines); err != nil {
		sg.compensate()
		return nil, fmt.Errorf("insert sales lines: %w", err)
	}
	sg.completed("insert order lines", func() error {
		return c.lines.DeleteBySale(order.ID, userID)
	})

	reason := "Sale " + order.Reference
	for i, line := range lines {
		item := resolved[i]
		if item == nil {
			continue
		}
		if err := c.ledger.DecrementForSale(ctx, userID, toTillLine(line), reason); err != nil {
			sg.compensate()
			return nil, err
		}
		itemID, qty := item.ID, line.Qty
		sg.completed("decrement stock", func() error {
			return c.ledger.Restock(ctx, userID, itemID, qty, "Reversal "+order.Reference)
		})
	}

	return c.toOrderResponse(order, lines), nil
}

// GetOrder returns one order with its lines, scoped to the owner.
func (c *Coordinator) GetOrder(ctx context.Context, userID string, id int64) (*dto.OrderResponse, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	order, err := c.orders.GetByID(id, userID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := c.lines.ListBySale(id, userID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	return c.toOrderResponse(order, lines), nil
}

// ListOrders returns the owner's orders, newest first, without lines.
func (c *Coordinator) ListOrders(ctx context.Context, userID string, limit, offset int) ([]dto.OrderResponse, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	orders, err := c.orders.List(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, *c.toOrderResponse(order, nil))
	}
	return out, nil
}

// buildLines derives the persisted lines and the order totals from the raw
// inputs. The VAT rate is fixed here, at order time; totals are sums of the
// already-rounded line values, re-rounded.
func (c *Coordinator) buildLines(userID string, inputs []dto.ReceiptLineInput, now time.Time) (lines []*entity.SalesLine, subtotal, vat, total float64) {
	lines = make([]*entity.SalesLine, 0, len(inputs))
	for _, in := range inputs {
		t := money.ComputeLine(in.Price, in.Cost, in.Qty, c.vatRate)
		payment := in.Payment
		if payment == "" {
			payment = entity.PaymentCash
		}
		lines = append(lines, &entity.SalesLine{
			UserID:          userID,
			InventoryItemID: in.InventoryItemID,
			Barcode:         in.Barcode,
			Name:            in.Name,
			Qty:             in.Qty,
			Price:           in.Price,
			Cost:            in.Cost,
			GrossTotal:      t.GrossTotal,
			VATAmount:       t.VATAmount,
			Profit:          t.Profit,
			Payment:         payment,
			Phone:           in.Phone,
			CreatedAt:       now,
		})
		total += t.GrossTotal
		vat += t.VATAmount
	}
	total = money.Round(total)
	vat = money.Round(vat)
	subtotal = money.Round(total - vat)
	return lines, subtotal, vat, total
}

func (c *Coordinator) resolveItem(userID string, line dto.ReceiptLineInput) (*entity.InventoryItem, error) {
	if c.items == nil {
		return nil, domain.ErrNotConfigured
	}
	if line.InventoryItemID != nil {
		item, err := c.items.GetByID(*line.InventoryItemID, userID)
		if err != nil {
			return nil, fmt.Errorf("get item: %w", err)
		}
		if item == nil {
			return nil, domain.ErrItemNotFound
		}
		return item, nil
	}
	if line.Barcode == "" {
		return nil, nil
	}
	item, err := c.items.GetBySKU(userID, line.Barcode)
	if err != nil {
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return item, nil
}

func (c *Coordinator) toOrderResponse(order *entity.SalesOrder, lines []*entity.SalesLine) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		Reference:     order.Reference,
		Status:        order.Status,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		PaymentMethod: order.PaymentMethod,
		Subtotal:      order.Subtotal,
		VATAmount:     order.VATAmount,
		Total:         order.Total,
		OrderDate:     order.OrderDate.Format(time.RFC3339),
	}
	for _, line := range lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:              line.ID,
			InventoryItemID: line.InventoryItemID,
			Barcode:         line.Barcode,
			Name:            line.Name,
			Qty:             line.Qty,
			Price:           line.Price,
			GrossTotal:      line.GrossTotal,
			VATAmount:       line.VATAmount,
			Profit:          line.Profit,
		})
	}
	return resp
}

func toTillLine(line *entity.SalesLine) entity.Line {
	return entity.Line{
		Barcode:         line.Barcode,
		Name:            line.Name,
		Qty:             line.Qty,
		Price:           line.Price,
		Cost:            line.Cost,
		GrossTotal:      line.GrossTotal,
		VATAmount:       line.VATAmount,
		Profit:          line.Profit,
		Payment:         line.Payment,
		Phone:           line.Phone,
		InventoryItemID: line.InventoryItemID,
	}
}

func paymentMethod(explicit string, lines []dto.ReceiptLineInput) string {
	if explicit != "" {
		return explicit
	}
	for _, line := range lines {
		if line.Payment != "" {
			return line.Payment
		}
	}
	return entity.PaymentCash
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newReference builds a human-readable order reference:
// SO-<YYYYMMDD>-<4 random base36 chars>.
func newReference(t time.Time) string {
	var b strings.Builder
	b.WriteString("SO-")
	b.WriteString(t.Format("20060102"))
	b.WriteByte('-')
	for i := 0; i < 4; i++ {
		b.WriteByte(base36[rand.Intn(len(base36))])
	}
	return b.String()
}
