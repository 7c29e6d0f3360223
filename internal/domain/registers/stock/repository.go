// Package stock provides the stock accumulation register: the append-only
// log of quantity movements and the materialized per-(warehouse, product)
// balances derived from it.
package stock

import (
	"context"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements (used while recording a document)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// GetMovementsByDoc retrieves all movements recorded by a document
	GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.StockMovement, error)

	// DeleteMovementsByDoc removes all movements recorded by a document.
	// Used while rolling a document back.
	DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error

	// Balance operations

	// GetBalance returns current balance for warehouse+product
	// (zero row if none exists yet).
	GetBalance(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with a row lock so the
	// check-then-write in the document lifecycle serializes.
	GetBalanceForUpdate(ctx context.Context, warehouseID, productID id.ID) (entity.StockBalance, error)

	// ApplyDelta adds a signed delta to the materialized balance row,
	// creating the row on first reference. Must run inside the same
	// transaction as the movement insert it reflects.
	ApplyDelta(ctx context.Context, warehouseID, productID id.ID, delta types.Quantity) error

	// ListBalances returns all non-zero balances ordered by dimensions.
	ListBalances(ctx context.Context) ([]entity.StockBalance, error)

	// Maintenance

	// Rebuild drops materialized balances and regenerates them by grouping
	// the movement log. The result does not depend on insertion order.
	Rebuild(ctx context.Context) error
}
