package repository

import "github.com/mahalpos/pos-api/internal/domain/entity"

// SalesOrderRepository persists order headers. Delete exists only for
// compensation: the store offers no multi-statement atomicity, so a failed
// step after header creation is undone by deleting the header again.
type SalesOrderRepository interface {
	// Insert persists the header and assigns its store-generated ID.
	Insert(order *entity.SalesOrder) error
	GetByID(id int64, userID string) (*entity.SalesOrder, error)
	List(userID string, limit, offset int) ([]*entity.SalesOrder, error)
	Delete(id int64, userID string) error
}

// SalesLineRepository persists order lines. Lines are immutable once written;
// DeleteBySale exists only for compensation.
type SalesLineRepository interface {
	InsertBatch(lines []*entity.SalesLine) error
	ListBySale(saleID int64, userID string) ([]*entity.SalesLine, error)
	DeleteBySale(saleID int64, userID string) error
}
