package income

import (
	"context"

	"tradebook/internal/core/id"
	"tradebook/internal/domain"
)

// Repository defines operations for Income persistence.
type Repository interface {
	// Create inserts the document row.
	Create(ctx context.Context, doc *Income) error

	// GetByID retrieves an income. Returns CodeNotFound if missing.
	GetByID(ctx context.Context, docID id.ID) (*Income, error)

	// GetByIDForUpdate retrieves an income with a row lock, so concurrent
	// edit/delete of the same document serialize.
	GetByIDForUpdate(ctx context.Context, docID id.ID) (*Income, error)

	// Delete removes the document row.
	Delete(ctx context.Context, docID id.ID) error

	// List returns incomes, most recent first.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Income], error)
}
