package warehouse

import (
	"context"

	"tradebook/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]
}

// Service provides business logic for the Warehouse catalog.
type Service struct {
	*domain.CatalogService[*Warehouse]
}

// NewService creates a new Warehouse service.
func NewService(repo Repository) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Warehouse](repo, "warehouse"),
	}
}

// GetOrCreate resolves a warehouse by name, creating it on first reference.
func (s *Service) GetOrCreate(ctx context.Context, name string) (*Warehouse, error) {
	return s.GetOrCreateByName(ctx, name, New)
}
