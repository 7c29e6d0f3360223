package debtors

import (
	"context"

	"tradebook/internal/core/id"
)

// Repository defines operations for Debtor persistence.
type Repository interface {
	// Create inserts an open debtor row.
	Create(ctx context.Context, d *Debtor) error

	// GetByID retrieves a debtor. Returns CodeNotFound if missing.
	GetByID(ctx context.Context, debtorID id.ID) (*Debtor, error)

	// GetByIDForUpdate retrieves a debtor with a row lock. Settlement
	// serializes on this lock, which is what makes it idempotent under
	// concurrent calls.
	GetByIDForUpdate(ctx context.Context, debtorID id.ID) (*Debtor, error)

	// MarkPaid closes the debtor.
	MarkPaid(ctx context.Context, debtorID id.ID) error

	// DeleteBySale removes the debtor owned by a sale, if any.
	// Used when the sale is rolled back.
	DeleteBySale(ctx context.Context, saleID id.ID) error

	// ListOpen returns all open (unpaid) debtors, oldest first.
	ListOpen(ctx context.Context) ([]*Debtor, error)

	// List returns all debtors, most recent first.
	List(ctx context.Context) ([]*Debtor, error)
}
