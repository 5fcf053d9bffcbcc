package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

// StorageUseCase manages the storage locations items and movements reference.
// The core consumes locations; it never deletes them.
type StorageUseCase struct {
	locations repository.StorageLocationRepository
}

// NewStorageUseCase builds the use case.
func NewStorageUseCase(locations repository.StorageLocationRepository) *StorageUseCase {
	return &StorageUseCase{locations: locations}
}

func (uc *StorageUseCase) configured() error {
	if uc.locations == nil {
		return domain.ErrNotConfigured
	}
	return nil
}

// List returns the owner's storage locations ordered by name.
func (uc *StorageUseCase) List(ctx context.Context, userID string) ([]*entity.StorageLocation, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	locations, err := uc.locations.List(userID)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	return locations, nil
}

// Create persists a new storage location.
func (uc *StorageUseCase) Create(ctx context.Context, userID, name, code, address string) (*entity.StorageLocation, error) {
	if err := uc.configured(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	location := &entity.StorageLocation{
		UserID:    userID,
		Name:      name,
		Code:      code,
		Address:   address,
		CreatedAt: time.Now(),
	}
	if err := uc.locations.Insert(location); err != nil {
		return nil, fmt.Errorf("insert storage location: %w", err)
	}
	return location, nil
}

// EnsureSeedLocation inserts a default location for owners that have none, so
// imports always have somewhere to land.
func (uc *StorageUseCase) EnsureSeedLocation(ctx context.Context, userID string) error {
	if err := uc.configured(); err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}
	existing, err := uc.locations.List(userID)
	if err != nil {
		return fmt.Errorf("list storage locations: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	return uc.locations.Insert(&entity.StorageLocation{
		UserID:    userID,
		Name:      "Main storage",
		Code:      "MAIN",
		CreatedAt: time.Now(),
	})
}
