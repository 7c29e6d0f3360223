package entity

import (
	"context"
	"strings"

	"tradebook/internal/core/apperror"
)

// Catalog is the base type for reference data: warehouses, products,
// accounts, customers. Rows are created lazily on first reference and
// are unique by name.
type Catalog struct {
	BaseEntity

	// Name is the display name (unique within the catalog)
	Name string `db:"name" json:"name"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name string) Catalog {
	return Catalog{
		BaseEntity: NewBaseEntity(),
		Name:       strings.TrimSpace(name),
	}
}

// GetName returns the unique display name.
func (c *Catalog) GetName() string {
	return c.Name
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}
