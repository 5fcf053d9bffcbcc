package sales

import (
	"context"

	"github.com/mahalpos/pos-api/internal/domain/entity"
)

// StockLedger is the slice of the inventory ledger the coordinator needs:
// applying sold lines to stock, and putting stock back when a later step of
// the transaction fails. Satisfied by *inventory.Ledger.
type StockLedger interface {
	DecrementForSale(ctx context.Context, userID string, line entity.Line, reason string) error
	Restock(ctx context.Context, userID string, itemID int64, quantity int, reason string) error
}
