package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mahalpos/pos-api/internal/application/dto"
	"github.com/mahalpos/pos-api/internal/application/reports"
	"github.com/mahalpos/pos-api/internal/domain"
)

// ReportHandler handles reporting requests (protected).
type ReportHandler struct {
	vat *reports.VATReportUseCase
}

// NewReportHandler builds the report handler.
func NewReportHandler(vat *reports.VATReportUseCase) *ReportHandler {
	return &ReportHandler{vat: vat}
}

// VATReport aggregates the owner's sales for one period. The from and to
// query params are YYYY-MM-DD dates; to is extended to the end of its day.
func (h *ReportHandler) VATReport(c *fiber.Ctx) error {
	userID := GetUserID(c)
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be a YYYY-MM-DD date"})
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be a YYYY-MM-DD date"})
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	report, err := h.vat.VATReport(c.Context(), userID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must not precede from"})
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
		case errors.Is(err, domain.ErrNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "storage backend not configured"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(report)
}
