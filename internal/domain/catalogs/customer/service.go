package customer

import (
	"context"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/id"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	// Create inserts a new customer. Returns CodeDuplicate when the
	// (name, phone) pair already exists.
	Create(ctx context.Context, c *Customer) error

	// GetByID retrieves a customer by id.
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// GetByIdentity retrieves a customer by the (name, phone) pair.
	GetByIdentity(ctx context.Context, name, phone string) (*Customer, error)

	// List returns all customers ordered by name.
	List(ctx context.Context) ([]*Customer, error)
}

// Service provides business logic for the Customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate resolves a customer by (name, phone), creating the row on
// first reference. Safe under concurrent get-or-create.
func (s *Service) GetOrCreate(ctx context.Context, name, phone string) (*Customer, error) {
	c := New(name, phone)
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByIdentity(ctx, c.Name, c.Phone)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if apperror.IsCode(err, apperror.CodeDuplicate) {
			return s.repo.GetByIdentity(ctx, c.Name, c.Phone)
		}
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a customer by id.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// List returns all customers.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}
