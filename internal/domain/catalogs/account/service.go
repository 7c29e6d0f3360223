package account

import (
	"context"

	"tradebook/internal/domain"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	domain.CatalogRepository[*Account]

	// ListByType returns accounts of one type ordered by name.
	ListByType(ctx context.Context, accType Type) ([]*Account, error)
}

// Service provides business logic for the Account catalog.
type Service struct {
	*domain.CatalogService[*Account]
	repo Repository
}

// NewService creates a new Account service.
func NewService(repo Repository) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Account](repo, "account"),
		repo:           repo,
	}
}

// GetOrCreate resolves an account by name, creating it with the given type
// on first reference. The type of an existing account is not changed.
func (s *Service) GetOrCreate(ctx context.Context, name string, accType Type) (*Account, error) {
	return s.GetOrCreateByName(ctx, name, func(n string) *Account {
		return New(n, accType)
	})
}

// ListByType returns accounts of one type.
func (s *Service) ListByType(ctx context.Context, accType Type) ([]*Account, error) {
	return s.repo.ListByType(ctx, accType)
}
