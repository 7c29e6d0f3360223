package sale

import (
	"context"

	"tradebook/internal/core/id"
	"tradebook/internal/domain"
)

// Repository defines operations for Sale persistence.
type Repository interface {
	// Create inserts the document row.
	Create(ctx context.Context, doc *Sale) error

	// GetByID retrieves a sale. Returns CodeNotFound if missing.
	GetByID(ctx context.Context, docID id.ID) (*Sale, error)

	// GetByIDForUpdate retrieves a sale with a row lock, so concurrent
	// edit/delete/settle of the same document serialize.
	GetByIDForUpdate(ctx context.Context, docID id.ID) (*Sale, error)

	// Delete removes the document row.
	Delete(ctx context.Context, docID id.ID) error

	// MarkPaid flips is_paid and records the settlement account.
	// The UNPAID → PAID transition is one-way.
	MarkPaid(ctx context.Context, docID, accountID id.ID) error

	// List returns sales, most recent first.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Sale], error)
}
