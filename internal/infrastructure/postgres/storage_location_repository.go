package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mahalpos/pos-api/internal/domain"
	"github.com/mahalpos/pos-api/internal/domain/entity"
	"github.com/mahalpos/pos-api/internal/domain/repository"
)

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implements the storage location port over PostgreSQL.
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository builds the persistence adapter for locations.
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

// List fetches all of the owner's locations, oldest first.
func (r *StorageLocationRepo) List(userID string) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, user_id, name, code, address, created_at
		FROM storage_locations WHERE user_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var loc entity.StorageLocation
		if err := rows.Scan(&loc.ID, &loc.UserID, &loc.Name, &loc.Code, &loc.Address, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}

// GetByID fetches one location scoped by owner.
func (r *StorageLocationRepo) GetByID(id int64, userID string) (*entity.StorageLocation, error) {
	query := `
		SELECT id, user_id, name, code, address, created_at
		FROM storage_locations WHERE id = $1 AND user_id = $2`
	var loc entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&loc.ID, &loc.UserID, &loc.Name, &loc.Code, &loc.Address, &loc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &loc, nil
}

// Insert persists a new location and writes the generated ID back into it.
func (r *StorageLocationRepo) Insert(location *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (user_id, name, code, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		location.UserID, location.Name, location.Code, location.Address,
	).Scan(&location.ID, &location.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}
