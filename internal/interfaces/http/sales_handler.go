package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mahalpos/pos-api/internal/application/dto"
	"github.com/mahalpos/pos-api/internal/application/sales"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
)

// SalesHandler handles receipts, orders and session summaries (protected).
type SalesHandler struct {
	coordinator *sales.Coordinator
}

// NewSalesHandler builds the sales handler.
func NewSalesHandler(coordinator *sales.Coordinator) *SalesHandler {
	return &SalesHandler{coordinator: coordinator}
}

// RecordReceipt persists a till receipt: header, lines and stock decrements.
// An empty line set is accepted and records nothing.
func (h *SalesHandler) RecordReceipt(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.RecordReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	receipt, err := h.coordinator.RecordReceipt(c.Context(), userID, in)
	if err != nil {
		return salesError(c, err)
	}
	if receipt == nil {
		return c.JSON(fiber.Map{"message": "nothing to record"})
	}
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// CreateOrder persists a sales order on the strict path that checks stock
// before writing anything.
func (h *SalesHandler) CreateOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	order, err := h.coordinator.CreateSalesOrder(c.Context(), userID, in)
	if err != nil {
		return salesError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder fetches one order with its lines.
func (h *SalesHandler) GetOrder(c *fiber.Ctx) error {
	userID := GetUserID(c)
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id must be an integer"})
	}
	order, err := h.coordinator.GetOrder(c.Context(), userID, int64(id))
	if err != nil {
		return salesError(c, err)
	}
	return c.JSON(order)
}

// ListOrders pages through the owner's orders, newest first.
func (h *SalesHandler) ListOrders(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query"})
	}
	page.DefaultPage()
	orders, err := h.coordinator.ListOrders(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return salesError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(orders), "orders": orders})
}

// SummarizeSession aggregates the submitted till lines without persisting
// anything. The client sends whatever lines its session holds.
func (h *SalesHandler) SummarizeSession(c *fiber.Ctx) error {
	var lines []entity.Line
	if err := c.BodyParser(&lines); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	return c.JSON(sales.SummarizeSession(lines))
}

func salesError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "not found"})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"})
	case errors.Is(err, domain.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "storage backend not configured"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
