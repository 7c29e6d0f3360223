// Package cash provides the cash accumulation register: the append-only
// log of money movements and the materialized per-account balances.
package cash

import (
	"context"

	"tradebook/internal/core/entity"
	"tradebook/internal/core/id"
	"tradebook/internal/core/types"
)

// Repository defines operations for the cash register.
type Repository interface {
	// CreateMovements batch inserts movements
	CreateMovements(ctx context.Context, movements []entity.CashMovement) error

	// GetMovementsByDoc retrieves all movements recorded by a document
	GetMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) ([]entity.CashMovement, error)

	// DeleteMovementsByDoc removes all movements recorded by a document
	DeleteMovementsByDoc(ctx context.Context, docType entity.DocType, docID id.ID) error

	// GetBalance returns the current balance of an account
	// (zero row if no movements yet).
	GetBalance(ctx context.Context, accountID id.ID) (entity.CashBalance, error)

	// ApplyDelta adds a signed delta to the materialized balance row,
	// creating the row on first reference. Must run inside the same
	// transaction as the movement insert it reflects.
	ApplyDelta(ctx context.Context, accountID id.ID, delta types.Money) error

	// ListBalances returns all account balances ordered by account.
	ListBalances(ctx context.Context) ([]entity.CashBalance, error)

	// Rebuild drops materialized balances and regenerates them from the log.
	Rebuild(ctx context.Context) error
}
