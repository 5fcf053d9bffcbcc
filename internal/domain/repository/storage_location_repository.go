package repository

import "github.com/mahalpos/pos-api/internal/domain/entity"

// StorageLocationRepository is the persistence port for storage locations.
// The core consumes locations but never deletes them.
type StorageLocationRepository interface {
	List(userID string) ([]*entity.StorageLocation, error)
	GetByID(id int64, userID string) (*entity.StorageLocation, error)
	Insert(location *entity.StorageLocation) error
}
