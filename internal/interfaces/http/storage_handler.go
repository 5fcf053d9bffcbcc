package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mahalpos/pos-api/internal/application/dto"
	appinv "github.com/mahalpos/pos-api/internal/application/inventory"
	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
)

// StorageHandler handles storage location requests (protected).
type StorageHandler struct {
	uc *appinv.StorageUseCase
}

// NewStorageHandler builds the storage location handler.
func NewStorageHandler(uc *appinv.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

// List fetches all of the owner's locations, seeding the default one when the
// account has none yet.
func (h *StorageHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if err := h.uc.EnsureSeedLocation(c.Context(), userID); err != nil {
		return storageError(c, err)
	}
	locations, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return storageError(c, err)
	}
	out := make([]dto.StorageLocationResponse, 0, len(locations))
	for _, loc := range locations {
		out = append(out, toLocationResponse(loc))
	}
	return c.JSON(fiber.Map{"total": len(out), "locations": out})
}

// Create adds a new storage location.
func (h *StorageHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.StorageLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	location, err := h.uc.Create(c.Context(), userID, in.Name, in.Code, in.Address)
	if err != nil {
		return storageError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLocationResponse(location))
}

func toLocationResponse(loc *entity.StorageLocation) dto.StorageLocationResponse {
	return dto.StorageLocationResponse{ID: loc.ID, Name: loc.Name, Code: loc.Code, Address: loc.Address}
}

func storageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid token"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "location already exists"})
	case errors.Is(err, domain.ErrNotConfigured):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "storage backend not configured"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
