package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mahalpos/pos-api/internal/application/dto"
	appinv "github.com/mahalpos/pos-api/internal/application/inventory"
	"github.com/mahalpos/pos-api/internal/domain"
	domaininv "github.com/mahalpos/pos-api/internal/domain/inventory"
	"github.com/mahalpos/pos-api/internal/infrastructure/spreadsheet"
)

// InventoryHandler handles item, stock and movement requests (protected).
type InventoryHandler struct {
	ledger *appinv.Ledger
}

// NewInventoryHandler builds the inventory handler.
func NewInventoryHandler(ledger *appinv.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// ListItems pages through the owner's stock with location names resolved.
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query"})
	}
	page.DefaultPage()
	items, err := h.ledger.ListItems(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// AddProducts merges a batch of product rows into stock.
func (h *InventoryHandler) AddProducts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.AddProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	rows := make([]domaininv.ImportRow, 0, len(in.Products))
	for _, p := range in.Products {
		loc := p.LocationID
		if loc == nil {
			loc = in.LocationID
		}
		rows = append(rows, domaininv.ImportRow{
			SKU:        p.Barcode,
			Name:       p.Name,
			Qty:        p.Qty,
			Unit:       p.Unit,
			Price:      p.Price,
			Cost:       p.Cost,
			LocationID: loc,
		})
	}
	reason := in.Reason
	if reason == "" {
		reason = appinv.ReasonManualAddition
	}
	imported, err := h.ledger.ImportBatch(c.Context(), userID, rows, reason)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddProductsResponse{Imported: imported})
}

// ImportSpreadsheet parses an uploaded .xlsx stock file and merges its rows.
// An optional location_id form field assigns all rows to one location.
func (h *InventoryHandler) ImportSpreadsheet(c *fiber.Ctx) error {
	userID := GetUserID(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "file is required"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "could not open file"})
	}
	defer file.Close()

	rows, err := spreadsheet.ParseWorkbook(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	if locStr := c.FormValue("location_id"); locStr != "" {
		locID, err := strconv.ParseInt(locStr, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id must be an integer"})
		}
		for i := range rows {
			rows[i].LocationID = &locID
		}
	}
	imported, err := h.ledger.ImportBatch(c.Context(), userID, rows, appinv.ReasonExcelImport)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AddProductsResponse{Imported: imported})
}

// AddStock increases one item's quantity.
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	userID := GetUserID(c)
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id must be an integer"})
	}
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := h.ledger.AddToStorage(c.Context(), userID, int64(itemID), in.Quantity, in.LocationID); err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock added"})
}

// DeleteItem removes one item from stock.
func (h *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	userID := GetUserID(c)
	itemID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id must be an integer"})
	}
	if err := h.ledger.RemoveItem(c.Context(), userID, int64(itemID)); err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "item removed"})
}

// ListMovements pages through the movement ledger, for one item when item_id
// is given or for the whole account otherwise.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "invalid query"})
	}
	page.DefaultPage()
	itemID := int64(c.QueryInt("item_id"))
	movements, err := h.ledger.ListMovements(c.Context(), userID, itemID, page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:              m.ID,
			InventoryItemID: m.InventoryItemID,
			MovementType:    m.MovementType,
			ChangeQty:       m.ChangeQty,
			LocationID:      m.LocationID,
			Reason:          m.Reason,
			CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item not found"})
	case errors.Is(err, domain.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "storage backend not configured"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
