// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
)

// Named is implemented by catalog entities identified by a unique name.
type Named interface {
	GetID() id.ID
	GetName() string
	Validate(ctx context.Context) error
}

// CatalogRepository defines operations for name-keyed reference data.
type CatalogRepository[T Named] interface {
	// Create inserts a new entity. Returns CodeDuplicate on a name collision.
	Create(ctx context.Context, entity T) error

	// GetByID retrieves entity by ID. Returns CodeNotFound if missing.
	GetByID(ctx context.Context, id id.ID) (T, error)

	// GetByName retrieves entity by its unique name. Returns CodeNotFound if missing.
	GetByName(ctx context.Context, name string) (T, error)

	// List returns all entities ordered by name.
	List(ctx context.Context) ([]T, error)

	// Delete removes the entity. The database restricts deletion while
	// movements reference the row.
	Delete(ctx context.Context, id id.ID) error
}

// CatalogService provides shared behavior for the name-keyed catalogs.
// Entity-specific services embed it and supply their constructor.
type CatalogService[T Named] struct {
	repo       CatalogRepository[T]
	entityName string
}

// NewCatalogService creates the shared catalog service core.
func NewCatalogService[T Named](repo CatalogRepository[T], entityName string) *CatalogService[T] {
	return &CatalogService[T]{repo: repo, entityName: entityName}
}

// Create validates and inserts a new catalog row.
func (s *CatalogService[T]) Create(ctx context.Context, entity T) error {
	if err := entity.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, entity)
}

// GetByID retrieves a catalog row by id.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return s.repo.GetByID(ctx, entityID)
}

// List returns all rows ordered by name.
func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Delete removes a row that no movement references.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	return s.repo.Delete(ctx, entityID)
}

// GetOrCreateByName resolves a row by name, creating it on first reference.
// make constructs the entity when it does not exist yet. Safe under
// concurrent get-or-create: a duplicate insert loses the race and re-reads.
func (s *CatalogService[T]) GetOrCreateByName(ctx context.Context, name string, make func(string) T) (T, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return existing, err
	}

	created := make(name)
	if err := created.Validate(ctx); err != nil {
		return existing, err
	}
	if err := s.repo.Create(ctx, created); err != nil {
		// Lost the uniqueness race: another writer inserted the same name.
		if apperror.IsCode(err, apperror.CodeDuplicate) {
			return s.repo.GetByName(ctx, name)
		}
		return existing, err
	}
	return created, nil
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// ListFilter contains common filtering options for document list operations.
type ListFilter struct {
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults (recent documents first).
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 50}
}
