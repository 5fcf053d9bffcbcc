package repository

import "github.com/mahalpos/pos-api/internal/domain/entity"

// UserRepository is the persistence port for owner accounts.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
