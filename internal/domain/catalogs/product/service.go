package product

import (
	"context"

	"tradebook/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]
}

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
}

// NewService creates a new Product service.
func NewService(repo Repository) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Product](repo, "product"),
	}
}

// GetOrCreate resolves a product by name, creating it on first reference.
func (s *Service) GetOrCreate(ctx context.Context, name string) (*Product, error) {
	return s.GetOrCreateByName(ctx, name, New)
}
